package internal

import (
	json "github.com/goccy/go-json"
)

// EncodeDay encodes a day artifact compactly. HTML characters are not escaped
// so question text stays readable in the file.
func EncodeDay(day *DayFile) ([]byte, error) {
	return json.MarshalWithOption(day, json.DisableHTMLEscape())
}

// EncodeIndex encodes the index artifact indented by two spaces.
func EncodeIndex(index *Index) ([]byte, error) {
	return json.MarshalIndentWithOption(index, "", "  ", json.DisableHTMLEscape())
}

// DecodeDay decodes a day artifact.
func DecodeDay(data []byte) (*DayFile, error) {
	var day DayFile
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, err
	}
	return &day, nil
}

// DecodeIndex decodes an index artifact.
func DecodeIndex(data []byte) (*Index, error) {
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return &index, nil
}
