package reader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFFormat implements Format for PDF files. pdfcpu validates the file and reads
// the info dictionary; page text comes from ledongthuc/pdf.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "PDF" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }

func (f *PDFFormat) Extract(ctx context.Context, filename string) (*Document, error) {
	doc, err := readPDFInfo(filename)
	if err != nil {
		return nil, err
	}

	fh, r, err := pdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer fh.Close()

	if n := r.NumPage(); n > doc.TotalPages {
		doc.TotalPages = n
	}
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// Image-only or broken pages carry no text.
			continue
		}
		doc.Pages = appendPage(doc.Pages, text)
	}

	return doc, nil
}

// readPDFInfo validates the file and returns a Document carrying its metadata
// and page count.
func readPDFInfo(filename string) (*Document, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadValidateAndOptimize(fh, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	doc := &Document{
		Title:      strings.TrimSpace(pctx.Title),
		Author:     strings.TrimSpace(pctx.Author),
		Creator:    strings.TrimSpace(pctx.Creator),
		TotalPages: pctx.PageCount,
		Metadata:   map[string]string{},
	}
	for k, v := range map[string]string{
		"Title":    pctx.Title,
		"Author":   pctx.Author,
		"Creator":  pctx.Creator,
		"Producer": pctx.Producer,
		"Subject":  pctx.Subject,
	} {
		if v = strings.TrimSpace(v); v != "" {
			doc.Metadata[k] = v
		}
	}
	return doc, nil
}
