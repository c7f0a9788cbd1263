package catalog

// SubjectResponse is the body of an Open Library subjects request
type SubjectResponse struct {
	Key       string `json:"key,omitempty"`
	Name      string `json:"name,omitempty"`
	WorkCount int    `json:"work_count,omitempty"`
	Works     []Work `json:"works"`
}

// Work is a work entry within a subject
type Work struct {
	Key               string        `json:"key"`
	Title             string        `json:"title"`
	CoverID           *int          `json:"cover_id,omitempty"`
	CoverEditionKey   string        `json:"cover_edition_key,omitempty"`
	EditionCount      int           `json:"edition_count,omitempty"`
	FirstPublishYear  *int          `json:"first_publish_year,omitempty"`
	Authors           []Author      `json:"authors,omitempty"`
	Subject           []string      `json:"subject,omitempty"`
	HasFulltext       bool          `json:"has_fulltext,omitempty"`
	PublicScan        bool          `json:"public_scan,omitempty"`
	Availability      *Availability `json:"availability,omitempty"`
	LendingEditionKey string        `json:"lending_edition,omitempty"`
}

// Author is a work author reference
type Author struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name"`
}

// Availability describes whether a scan can be read online
type Availability struct {
	Status     string `json:"status,omitempty"`
	IsReadable bool   `json:"is_readable"`
	IsLendable bool   `json:"is_lendable,omitempty"`
}
