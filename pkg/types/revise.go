// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReviseItem is one revision request: the errors flagged on a submitted PDF
// combined with the resolved paper's id, title, and contact.
type ReviseItem struct {
	// PDFName is the stamped file name the reviewer checked (e.g. "A2L1.pdf").
	PDFName string `json:"pdfname" yaml:"pdfname"`

	// Errors holds the human-readable error messages, in error-table order.
	Errors []string `json:"errors" yaml:"errors"`

	// ExtMsg is an optional free-text hint from the committee.
	ExtMsg string `json:"ext_msg,omitempty" yaml:"ext_msg,omitempty"`

	PaperID int    `json:"paper_id" yaml:"paper_id"`
	Title   string `json:"title" yaml:"title"`
	Contact Person `json:"contact" yaml:"contact"`
}
