package types

import "time"

// SheetConfig holds settings for spreadsheet ingestion.
type SheetConfig struct {
	// TZOffsetHours is the fixed UTC offset of session times in the sheet.
	TZOffsetHours int `json:"tz_offset_hours" yaml:"tz_offset_hours"`

	// PresentationTime is the slot length of a regular paper (default 20m).
	PresentationTime time.Duration `json:"presentation_time" yaml:"presentation_time"`

	// PlenaryTalkTime is the slot length of a plenary talk (default 60m).
	PlenaryTalkTime time.Duration `json:"plenary_talk_time" yaml:"plenary_talk_time"`

	// SheetName selects the worksheet of an .xlsx input. Empty means the first sheet.
	SheetName string `json:"sheet_name,omitempty" yaml:"sheet_name,omitempty"`
}

// Enclosure selects how stamped page numbers are decorated.
type Enclosure string

const (
	EnclosureParens Enclosure = "parens"
	EnclosureEnDash Enclosure = "en_dash"
	EnclosureEmDash Enclosure = "em_dash"
	EnclosureMinus  Enclosure = "minus"
	EnclosurePage   Enclosure = "page"
	EnclosurePageUC Enclosure = "Page"
)

// StampConfig holds settings for PDF stamping.
type StampConfig struct {
	// Overlay is the PDF whose first page is stamped on each paper's first page.
	Overlay string `json:"overlay" yaml:"overlay"`

	// InputDir holds the submitted PDFs named <paper id>.pdf.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives stamped PDFs named <session code><order>.pdf.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	Enclosure Enclosure `json:"enclosure" yaml:"enclosure"`

	// StartPage is the page number of the first stamped page (default 1).
	StartPage int `json:"start_page" yaml:"start_page"`
}

// MailConfig holds settings for revision-request emails. SMTP credentials
// are not stored here; they come from the environment.
type MailConfig struct {
	// DumpDir receives email.dump and failed_email.dump (default ".log").
	DumpDir string `json:"dump_dir" yaml:"dump_dir"`

	// DryRun connects but does not send.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Dump appends every message to the dump files.
	Dump bool `json:"dump" yaml:"dump"`

	// Timeout bounds a single SMTP exchange.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// CatalogConfig holds settings for the program catalog.
type CatalogConfig struct {
	// Dir holds program.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// JSON switches from console output to JSON lines.
	JSON bool `json:"json" yaml:"json"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Sheet   SheetConfig   `json:"sheet" yaml:"sheet"`
	Stamp   StampConfig   `json:"stamp" yaml:"stamp"`
	Mail    MailConfig    `json:"mail" yaml:"mail"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}
