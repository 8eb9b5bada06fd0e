package instagram

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/desertthunder/followback/internal/shared"
)

// ErrInvalidExport is returned when a JSON document matches neither export layout.
var ErrInvalidExport = errors.New("invalid JSON structure")

// Kind identifies which export a document was recognised as.
type Kind int

const (
	UnknownExport Kind = iota
	FollowersExport
	FollowingExport
	PlainList
)

func (k Kind) String() string {
	switch k {
	case FollowersExport:
		return "followers"
	case FollowingExport:
		return "following"
	case PlainList:
		return "list"
	default:
		return "unknown"
	}
}

// StringListData is one entry of an export's string_list_data array.
type StringListData struct {
	Href      string `json:"href"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// Relationship is one account entry in an export.
type Relationship struct {
	Title          string           `json:"title"`
	StringListData []StringListData `json:"string_list_data"`
}

// username returns the first string_list_data value, or "" when the entry has none.
func (r Relationship) username() string {
	if len(r.StringListData) == 0 {
		return ""
	}
	return shared.NormalizeUsername(r.StringListData[0].Value)
}

type followingDocument struct {
	RelationshipsFollowing *[]Relationship `json:"relationships_following"`
}

// Accounts is the parsed content of one export file.
type Accounts struct {
	Kind      Kind
	Usernames []string
}

// ParseUsernames extracts usernames from an export file.
//
// The name decides the format: ".json" (case-insensitive) is decoded as an Instagram export,
// anything else is read as a CSV list.
func ParseUsernames(name string, r io.Reader) (*Accounts, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return ParseJSON(r)
	}
	return ParseCSV(r)
}

// ParseJSON decodes either export layout.
func ParseJSON(r io.Reader) (*Accounts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrInvalidExport
	}

	switch trimmed[0] {
	case '[':
		var items []Relationship
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
		}
		return &Accounts{Kind: FollowersExport, Usernames: usernames(items)}, nil
	case '{':
		var doc followingDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExport, err)
		}
		if doc.RelationshipsFollowing == nil {
			return nil, ErrInvalidExport
		}
		return &Accounts{Kind: FollowingExport, Usernames: usernames(*doc.RelationshipsFollowing)}, nil
	default:
		return nil, ErrInvalidExport
	}
}

// ParseCSV reads one username per row from the first column. Rows may have extra columns.
func ParseCSV(r io.Reader) (*Accounts, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var names []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV list: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		if name := shared.NormalizeUsername(record[0]); name != "" {
			names = append(names, name)
		}
	}

	return &Accounts{Kind: PlainList, Usernames: names}, nil
}

func usernames(items []Relationship) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name := item.username(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
