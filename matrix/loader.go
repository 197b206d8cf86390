// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package matrix

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"
)

// Load reads a matrix, selecting the format from the file extension.
// Supported extensions are .csv, .json and .parquet.
func Load(path string) (m Dense, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		err = ErrFormat(path)
		return
	}
}

// ErrFormat indicates an unsupported matrix file format.
type ErrFormat string

func (err ErrFormat) Error() string {
	return f("%v: unknown matrix format", string(err))
}

// LoadCSV reads a CSV file. The first row is a header and is ignored;
// each following row is a matrix row.
func LoadCSV(path string) (m Dense, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	df, err := imports.LoadFromCSV(context.Background(), file, imports.CSVLoadOptions{
		InferDataTypes: true,
	})
	if err != nil {
		return
	}

	return FromDataFrame(df)
}

// LoadJSON reads a JSON array of row objects, one key per column.
func LoadJSON(path string) (m Dense, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if len(data) == 0 {
		err = ErrEmpty
		return
	}

	df, err := imports.LoadFromJSON(context.Background(), bytes.NewReader(data))
	if err != nil {
		return
	}

	return FromDataFrame(df)
}

// LoadParquet reads a Parquet file, one column per matrix column.
func LoadParquet(path string) (m Dense, err error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return
	}
	defer fr.Close()

	df, err := imports.LoadFromParquet(context.Background(), fr)
	if err != nil {
		return
	}

	return FromDataFrame(df)
}

// FromDataFrame converts a data frame into a dense matrix. Each series is
// a column. Missing values are zero.
func FromDataFrame(df *dataframe.DataFrame) (m Dense, err error) {
	if df == nil || len(df.Series) == 0 {
		err = ErrEmpty
		return
	}

	rows := df.NRows()
	if rows == 0 {
		err = ErrEmpty
		return
	}

	m = make(Dense, rows)
	for i := range m {
		m[i] = make([]int64, len(df.Series))
	}

	for j, series := range df.Series {
		if series.NRows() != rows {
			err = ErrRagged
			return
		}
		for i := range rows {
			var value int64
			value, err = cellValue(series.Value(i))
			if err != nil {
				err = ErrValue{Row: i, Column: j, Value: series.Value(i)}
				return
			}
			m[i][j] = value
		}
	}

	return
}

// cellValue converts one data frame cell into an integer.
func cellValue(cell any) (value int64, err error) {
	switch v := cell.(type) {
	case nil:
		value = 0
	case int64:
		value = v
	case int:
		value = int64(v)
	case float64:
		if v != math.Trunc(v) {
			err = errNotInteger
			return
		}
		value = int64(v)
	case string:
		value, err = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		err = errNotInteger
	}
	return
}
