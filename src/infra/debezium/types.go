package debezium

// CDCEvent represents raw CDC event from Debezium
type CDCEvent struct {
	Before    map[string]interface{} `json:"before"`
	After     map[string]interface{} `json:"after"`
	Source    CDCSource              `json:"source"`
	Operation string                 `json:"op"` // c=create, u=update, d=delete, r=read
	TsMs      int64                  `json:"ts_ms"`
}

type CDCSource struct {
	Connector string `json:"connector"`
	Name      string `json:"name"`
	TsMs      int64  `json:"ts_ms"`
	Snapshot  string `json:"snapshot"`
	DB        string `json:"db"`
	Schema    string `json:"schema"`
	Table     string `json:"table"`
	LSN       int64  `json:"lsn"`
}

// Row returns the row image that still identifies the record: after for
// creates and updates, before for deletes.
func (e *CDCEvent) Row() map[string]interface{} {
	if e.Operation == "d" {
		return e.Before
	}
	return e.After
}

// StringField reads a string column from the row image.
func (e *CDCEvent) StringField(name string) (string, bool) {
	value, ok := e.Row()[name].(string)
	return value, ok && value != ""
}
