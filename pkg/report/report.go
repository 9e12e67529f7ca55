// Package report composes the message sent to the operator after a run.
//
// The message is German, matching the language of the cooperatives the
// tool is used by. It links the upload form of the ordering platform,
// lists which categories were read or ignored, names ignored articles and
// ends with all notifications of the run.
package report

import (
	"fmt"
	"strings"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/dedupe"
	"github.com/agentstation/foodsync/pkg/differ"
	"github.com/agentstation/foodsync/pkg/notify"
)

// Data is everything the composer needs about one run.
type Data struct {
	Supplier   string
	SupplierID int

	// PlatformURL is the base URL of the platform, ending in a slash.
	// Without it no upload link is written.
	PlatformURL string

	// ExportFile is the name of the written CSV.
	ExportFile string

	Categories           []*articles.Category
	IgnoredCategories    []*articles.Category
	IgnoredSubcategories []*articles.Category
	IgnoredArticles      []articles.Article
	Renames              []dedupe.Rename
	Changes              *differ.Changeset
	Notifications        notify.List
}

// UploadURL returns the address of the article upload form of a supplier.
func UploadURL(platformURL string, supplierID int) string {
	if platformURL == "" {
		return ""
	}
	if !strings.HasSuffix(platformURL, "/") {
		platformURL += "/"
	}
	return fmt.Sprintf("%ssuppliers/%d/articles/upload", platformURL, supplierID)
}

// Compose builds the operator message.
func Compose(d Data) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Anbei die Liste an automatisch ausgelesenen Artikeln von %s.\n", d.Supplier)
	if link := UploadURL(d.PlatformURL, d.SupplierID); link != "" {
		sb.WriteString("Sie kann unter folgendem Link hochgeladen werden: (Häkchen bei 'Artikel löschen, die nicht in der hochgeladenen Datei sind' setzen!)\n")
		sb.WriteString(link + "\n")
	}
	if d.ExportFile != "" {
		fmt.Fprintf(&sb, "Datei: %s\n", d.ExportFile)
	}

	sb.WriteString("\n\nAusgelesene Kategorien:\n")
	sb.WriteString(ListCategories(d.Categories))

	if len(d.IgnoredCategories) > 0 {
		sb.WriteString("\nIgnorierte Kategorien:\n")
		sb.WriteString(ListCategories(d.IgnoredCategories))
	}
	if len(d.IgnoredSubcategories) > 0 {
		sb.WriteString("\nIgnorierte Unterkategorien:\n")
		sb.WriteString(ListCategories(d.IgnoredSubcategories))
	}

	if len(d.IgnoredArticles) > 0 {
		sb.WriteString("\nIgnorierte einzelne Artikel:")
		for _, a := range d.IgnoredArticles {
			sb.WriteString("\n" + DescribeArticle(a))
		}
		sb.WriteString("\n")
	}

	if len(d.Renames) > 0 {
		sb.WriteString("\nUmbenannte Artikel (gleiche Namen):")
		for _, r := range d.Renames {
			fmt.Fprintf(&sb, "\n#%s %s -> %s", r.OrderNumber, r.From, r.To)
		}
		sb.WriteString("\n")
	}

	if d.Changes != nil && d.Changes.HasChanges() {
		fmt.Fprintf(&sb, "\nÄnderungen seit dem letzten Export: %d neu, %d geändert, %d entfernt\n",
			d.Changes.Summary.Added, d.Changes.Summary.Updated, d.Changes.Summary.Removed)
	}

	if len(d.Notifications) > 0 {
		sb.WriteString("\nHinweise:")
		for _, n := range d.Notifications {
			sb.WriteString("\n- " + n.Message)
		}
	}

	return sb.String()
}

// ListCategories writes one line per category, naming its direct
// subcategories in brackets.
func ListCategories(categories []*articles.Category) string {
	var sb strings.Builder
	for _, c := range categories {
		if c == nil {
			continue
		}
		fmt.Fprintf(&sb, "#%d %s", c.Number, c.Name)
		if names := c.SubcategoryNames(); len(names) > 0 {
			fmt.Fprintf(&sb, " (inkl. Unterkategorien %s)", strings.Join(names, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// DescribeArticle formats an article as "#<order> <name> <unit> von <m> aus <o>".
func DescribeArticle(a articles.Article) string {
	s := fmt.Sprintf("#%s %s %s", a.OrderNumber, a.Name, a.Unit)
	if a.Manufacturer != "" {
		s += " von " + a.Manufacturer
	}
	if a.Origin != "" {
		s += " aus " + a.Origin
	}
	return s
}
