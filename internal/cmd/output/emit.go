package output

import (
	"io"

	"github.com/agentstation/foodsync/internal/cmd/table"
)

// Emit writes tableData for table formats and raw for structured ones.
func Emit(w io.Writer, format string, tableData table.Data, raw any) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if f.Structured() {
		return Encode(w, f, raw)
	}
	return Table(w, tableData)
}
