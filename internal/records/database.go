package records

import (
	"gopkg.in/yaml.v3"

	"github.com/kingtech/dboptima/internal/collection"
)

// Engine identifies the database engine behind a monitored connection.
type Engine string

const (
	EnginePostgreSQL Engine = "postgresql"
	EngineMySQL      Engine = "mysql"
	EngineMongoDB    Engine = "mongodb"
	EngineRedis      Engine = "redis"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Engine) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "database engine",
		EnginePostgreSQL, EngineMySQL, EngineMongoDB, EngineRedis)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ConnectionStatus is the health of a monitored database connection.
// There are no transition rules: status reflects whatever the monitoring
// side last reported.
type ConnectionStatus string

const (
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionError        ConnectionStatus = "error"
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ConnectionStatus) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, "connection status",
		ConnectionConnected, ConnectionDisconnected, ConnectionError)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DatabaseConnection is one entry on the databases page. QueriesPerSecond
// and Latency are only meaningful while Status is connected; disconnected
// and errored connections report zero by convention.
type DatabaseConnection struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Engine   Engine           `json:"type" yaml:"engine"`
	Host     string           `json:"host" yaml:"host"`
	Port     int              `json:"port" yaml:"port"`
	Database string           `json:"database" yaml:"database"`
	Status   ConnectionStatus `json:"status" yaml:"status"`
	LastSync string           `json:"lastSync" yaml:"last_sync"`
	// QueriesPerSecond is the most recently sampled throughput.
	QueriesPerSecond int `json:"queriesPerSecond" yaml:"queries_per_second"`
	// Latency is the most recently sampled round-trip latency in ms.
	Latency int `json:"latency" yaml:"latency"`
}

// Key implements collection.Record.
func (d DatabaseConnection) Key() string { return d.ID }

// DatabaseSearchFields lists the text fields the databases page searches
// over.
func DatabaseSearchFields(d DatabaseConnection) []string {
	return []string{d.Name, d.Host}
}

var _ collection.Record = DatabaseConnection{}
