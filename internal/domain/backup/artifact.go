package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ArtifactVersion is the only artifact schema this build reads or writes.
const ArtifactVersion = 1

// SectionRecord is a raw sections row as stored in an artifact.
type SectionRecord struct {
	ID             string     `json:"id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	NormalizedName string     `json:"normalized_name" validate:"required"`
	Icon           string     `json:"icon"`
	Color          string     `json:"color"`
	CreatedAt      time.Time  `json:"created_at" validate:"required"`
	UpdatedAt      time.Time  `json:"updated_at" validate:"required"`
	DeletedAt      *time.Time `json:"deleted_at"`
}

// ItemRecord is a raw items row as stored in an artifact.
type ItemRecord struct {
	ID              string     `json:"id" validate:"required"`
	SectionID       string     `json:"section_id" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	NormalizedName  string     `json:"normalized_name" validate:"required"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority" validate:"oneof=must soon optional"`
	RemindEveryDays int        `json:"remind_every_days" validate:"min=0"`
	Checked         Flag       `json:"checked"`
	Favorite        Flag       `json:"favorite"`
	RunningLow      Flag       `json:"running_low"`
	LastCheckedAt   *time.Time `json:"last_checked_at"`
	CreatedAt       time.Time  `json:"created_at" validate:"required"`
	UpdatedAt       time.Time  `json:"updated_at" validate:"required"`
	DeletedAt       *time.Time `json:"deleted_at"`
}

// HistoryRecord is a raw history_events row as stored in an artifact.
// PayloadJSON holds the payload as a JSON document string, or null.
type HistoryRecord struct {
	ID          string    `json:"id" validate:"required"`
	EntityType  string    `json:"entity_type" validate:"required"`
	EntityID    string    `json:"entity_id" validate:"required"`
	Action      string    `json:"action" validate:"required"`
	PayloadJSON *string   `json:"payload_json"`
	CreatedAt   time.Time `json:"created_at" validate:"required"`
}

// Dataset is the full primary dataset: every section, item and history
// event, tombstones included.
type Dataset struct {
	Sections      []SectionRecord `json:"sections"`
	Items         []ItemRecord    `json:"items"`
	HistoryEvents []HistoryRecord `json:"historyEvents"`
}

// Artifact is the versioned, self-describing export document.
type Artifact struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Dataset
}

// NewArtifact wraps a dataset for writing. Nil slices become empty arrays
// so the document always carries all three.
func NewArtifact(ds *Dataset, createdAt time.Time) *Artifact {
	a := &Artifact{Version: ArtifactVersion, CreatedAt: createdAt.UTC(), Dataset: *ds}
	if a.Sections == nil {
		a.Sections = []SectionRecord{}
	}
	if a.Items == nil {
		a.Items = []ItemRecord{}
	}
	if a.HistoryEvents == nil {
		a.HistoryEvents = []HistoryRecord{}
	}
	return a
}

// Encode renders the artifact as indented JSON.
func (a *Artifact) Encode() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// envelope mirrors Artifact with pointers so absent fields are detectable.
type envelope struct {
	Version       *int             `json:"version"`
	CreatedAt     *time.Time       `json:"createdAt"`
	Sections      *[]SectionRecord `json:"sections"`
	Items         *[]ItemRecord    `json:"items"`
	HistoryEvents *[]HistoryRecord `json:"historyEvents"`
}

var artifactValidator = validator.New(validator.WithRequiredStructEnabled())

// DecodeArtifact parses and validates an artifact. Any deviation from the
// expected version or shape rejects the whole document.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if env.Version == nil || *env.Version != ArtifactVersion {
		return nil, fmt.Errorf("unsupported artifact version")
	}
	if env.CreatedAt == nil {
		return nil, fmt.Errorf("artifact createdAt is missing")
	}
	if env.Sections == nil || env.Items == nil || env.HistoryEvents == nil {
		return nil, fmt.Errorf("artifact is missing a required array")
	}

	a := &Artifact{
		Version:   *env.Version,
		CreatedAt: *env.CreatedAt,
		Dataset: Dataset{
			Sections:      *env.Sections,
			Items:         *env.Items,
			HistoryEvents: *env.HistoryEvents,
		},
	}
	if err := a.validateRows(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Artifact) validateRows() error {
	for i := range a.Sections {
		if err := artifactValidator.Struct(&a.Sections[i]); err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
	}
	for i := range a.Items {
		if err := artifactValidator.Struct(&a.Items[i]); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	for i := range a.HistoryEvents {
		ev := &a.HistoryEvents[i]
		if err := artifactValidator.Struct(ev); err != nil {
			return fmt.Errorf("historyEvents[%d]: %w", i, err)
		}
		if ev.PayloadJSON != nil && !json.Valid([]byte(*ev.PayloadJSON)) {
			return fmt.Errorf("historyEvents[%d]: payload_json is not valid JSON", i)
		}
	}
	return nil
}

// Flag is a boolean column that older artifacts stored as 0/1.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}
