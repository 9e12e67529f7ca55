package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/internal/foodsoft"
	"github.com/agentstation/foodsync/internal/pipeline"
	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/ledger"
	"github.com/agentstation/foodsync/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	RunOptionsFunc   func(supplier string) *pipeline.Options
	SuppliersFunc    func() []string
	RunnerFunc       func() *pipeline.Runner
	ScheduleFunc     func() string
	LedgerStoreFunc  func() *ledger.Store
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// RunOptions returns run options using the mock function or the defaults.
func (m *Mock) RunOptions(supplier string) *pipeline.Options {
	if m.RunOptionsFunc != nil {
		return m.RunOptionsFunc(supplier)
	}
	return pipeline.Defaults().Apply(pipeline.WithSupplier(supplier, 0))
}

// Suppliers returns suppliers using the mock function or none.
func (m *Mock) Suppliers() []string {
	if m.SuppliersFunc != nil {
		return m.SuppliersFunc()
	}
	return nil
}

// Runner returns a runner using the mock function or one without platform.
func (m *Mock) Runner() *pipeline.Runner {
	if m.RunnerFunc != nil {
		return m.RunnerFunc()
	}
	return pipeline.NewRunner(foodsoft.Config{}, pipeline.WithLogger(m.Logger()))
}

// Schedule returns the schedule using the mock function or the default.
func (m *Mock) Schedule() string {
	if m.ScheduleFunc != nil {
		return m.ScheduleFunc()
	}
	return constants.DefaultSchedule
}

// LedgerStore returns a store using the mock function or the default path.
func (m *Mock) LedgerStore() *ledger.Store {
	if m.LedgerStoreFunc != nil {
		return m.LedgerStoreFunc()
	}
	return ledger.NewStore(constants.DefaultLedgerPath)
}

// Logger returns a logger using the mock function or a nop logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
