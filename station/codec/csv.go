package codec

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/viant/fluxpath/model/carrier"
	"github.com/viant/fluxpath/model/station"
)

const (
	// DataTypeList returns rows as [][]string
	DataTypeList = "list"
	// DataTypeDict returns rows as []map[string]string keyed by header
	DataTypeDict = "dict"
)

// CSVConfig configures CSVLoad
type CSVConfig struct {
	DataType  string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// CSVLoad parses CSV text into rows
type CSVLoad struct {
	config CSVConfig
	comma  rune
}

// Execute parses payload
func (l *CSVLoad) Execute(ctx context.Context, payload interface{}, state *carrier.Context, c *carrier.Carrier) (interface{}, error) {
	data, err := asBytes(payload)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = l.comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if l.config.DataType == DataTypeList {
		return records, nil
	}
	ret := make([]map[string]string, 0, len(records))
	if len(records) == 0 {
		return ret, nil
	}
	header := records[0]
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		ret = append(ret, row)
	}
	return ret, nil
}

// NewCSVLoad creates csv.load station
func NewCSVLoad(name string, config map[string]interface{}) (station.Block, error) {
	ret := &CSVLoad{config: CSVConfig{DataType: DataTypeList, Delimiter: ","}}
	if err := station.DecodeConfig(config, &ret.config); err != nil {
		return nil, fmt.Errorf("invalid %v config: %w", name, err)
	}
	switch ret.config.DataType {
	case DataTypeList, DataTypeDict:
	default:
		return nil, fmt.Errorf("invalid %v dataType: %q", name, ret.config.DataType)
	}
	runes := []rune(ret.config.Delimiter)
	if len(runes) != 1 {
		return nil, fmt.Errorf("invalid %v delimiter: %q", name, ret.config.Delimiter)
	}
	ret.comma = runes[0]
	return ret, nil
}
