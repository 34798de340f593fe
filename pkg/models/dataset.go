package models

// Dataset is a finite collection of individual records. The engine only ever
// reads a dataset; ownership of the records stays with the caller. Record ids
// are expected to be unique per dataset; duplicate ids are a dataset
// integrity concern, not an engine concern.
type Dataset struct {
	records []*Record
	index   map[string]*Record
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{index: make(map[string]*Record)}
}

// Add appends a record to the dataset.
func (d *Dataset) Add(r *Record) {
	d.records = append(d.records, r)
	d.index[r.ID] = r
}

// Get returns the record with the given id, if present.
func (d *Dataset) Get(id string) (*Record, bool) {
	r, ok := d.index[id]
	return r, ok
}

// Records returns the records in insertion order. The returned slice is a
// view of the dataset's internal state and must not be mutated.
func (d *Dataset) Records() []*Record {
	return d.records
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.records)
}
