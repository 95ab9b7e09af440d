package database

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Migrator performs a schema migration against the database
type Migrator func(db *gorm.DB) error

// Configuration holds the database connection configuration
type Configuration struct {
	dsn        string
	migrations []Migrator
}

// Configurator mutates the database configuration
type Configurator func(c *Configuration)

// SetMigrations registers migrations to run once the connection is established
func SetMigrations(migrations ...Migrator) Configurator {
	return func(c *Configuration) {
		c.migrations = append(c.migrations, migrations...)
	}
}

// DSNBuilder provides fluent construction of a postgres DSN
type DSNBuilder struct {
	user         string
	password     string
	host         string
	port         uint16
	databaseName string
}

// NewDSNBuilder creates an empty DSN builder
func NewDSNBuilder() *DSNBuilder {
	return &DSNBuilder{}
}

// SetUser sets the database user
func (b *DSNBuilder) SetUser(user string) *DSNBuilder {
	b.user = user
	return b
}

// SetPassword sets the database password
func (b *DSNBuilder) SetPassword(password string) *DSNBuilder {
	b.password = password
	return b
}

// SetHost sets the database host
func (b *DSNBuilder) SetHost(host string) *DSNBuilder {
	b.host = host
	return b
}

// SetPort sets the database port
func (b *DSNBuilder) SetPort(port uint16) *DSNBuilder {
	b.port = port
	return b
}

// SetDatabaseName sets the database name
func (b *DSNBuilder) SetDatabaseName(databaseName string) *DSNBuilder {
	b.databaseName = databaseName
	return b
}

// Build produces the DSN string
func (b *DSNBuilder) Build() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		b.host, b.user, b.password, b.databaseName, b.port)
}

// Connect establishes the database connection and runs registered migrations
func Connect(l logrus.FieldLogger, configurators ...Configurator) *gorm.DB {
	port := uint16(5432)
	if p, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 16); err == nil {
		port = uint16(p)
	}

	dsn := NewDSNBuilder().
		SetUser(os.Getenv("DB_USER")).
		SetPassword(os.Getenv("DB_PASSWORD")).
		SetHost(os.Getenv("DB_HOST")).
		SetPort(port).
		SetDatabaseName(os.Getenv("DB_NAME")).
		Build()

	c := &Configuration{
		dsn:        dsn,
		migrations: make([]Migrator, 0),
	}
	for _, configurator := range configurators {
		configurator(c)
	}

	db, err := gorm.Open(postgres.Open(c.dsn), &gorm.Config{})
	if err != nil {
		l.WithError(err).Fatal("Unable to connect to database.")
	}

	for _, migration := range c.migrations {
		if err = migration(db); err != nil {
			l.WithError(err).Fatal("Unable to migrate database.")
		}
	}

	return db
}
