package labeltree

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Columns is an ordered set of column names and values for one row
type Columns struct {
	Names  []string
	Values []any
}

// Add appends a column
func (c *Columns) Add(name string, v any) {
	c.Names = append(c.Names, name)
	c.Values = append(c.Values, v)
}

// Len returns the number of columns
func (c Columns) Len() int { return len(c.Names) }

type column struct {
	name     string
	required bool
	index    int
}

var columnCache sync.Map // reflect.Type -> []column

// columnsOf reads the db tags of a payload struct type
func columnsOf(t reflect.Type) []column {
	if v, ok := columnCache.Load(t); ok {
		return v.([]column)
	}
	var out []column
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		name, opt, _ := strings.Cut(tag, ",")
		out = append(out, column{name: name, required: opt == "required", index: i})
	}
	columnCache.Store(t, out)
	return out
}

func elem(p Payload) reflect.Value {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		panic(fmt.Sprintf("labeltree: payload must be a non nil pointer, got %T", p))
	}
	return v.Elem()
}

// RowColumns returns the payload's columns with their current values
// nil pointers encode as NULL
func RowColumns(p Payload) Columns {
	v := elem(p)
	var c Columns
	for _, col := range columnsOf(v.Type()) {
		c.Add(col.name, v.Field(col.index).Interface())
	}
	return c
}

// ScanTargets returns the column names and field addresses to scan a row into p
func ScanTargets(p Payload) ([]string, []any) {
	v := elem(p)
	cols := columnsOf(v.Type())
	names := make([]string, len(cols))
	dest := make([]any, len(cols))
	for i, col := range cols {
		names[i] = col.name
		dest[i] = v.Field(col.index).Addr().Interface()
	}
	return names, dest
}

// Missing returns the required columns p leaves nil
func Missing(p Payload) []string {
	v := elem(p)
	var out []string
	for _, col := range columnsOf(v.Type()) {
		if col.required && v.Field(col.index).IsNil() {
			out = append(out, col.name)
		}
	}
	return out
}

// Merge copies every non nil field of src onto dst; both must be the same subtype
func Merge(dst, src Payload) error {
	if dst.Subtype() != src.Subtype() {
		return SubtypeMismatch()
	}
	dv, sv := elem(dst), elem(src)
	for _, col := range columnsOf(dv.Type()) {
		if f := sv.Field(col.index); !f.IsNil() {
			dv.Field(col.index).Set(f)
		}
	}
	return nil
}

// stringField returns the value of the named column when it is a non nil *string
func stringField(p Payload, name string) *string {
	v := elem(p)
	for _, col := range columnsOf(v.Type()) {
		if col.name != name {
			continue
		}
		if s, ok := v.Field(col.index).Interface().(*string); ok {
			return s
		}
	}
	return nil
}
