package settings

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// DatabaseConfig structure
type DatabaseConfig struct {
	Host            string
	Username        string
	Password        string
	Name            string
	SSLmode         string `mapstructure:"sslmode"`
	ApplicationName string `mapstructure:"application_name"`
	Port            int
}

// URI in the form expected by the migration tool
func (c DatabaseConfig) URI() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", c.Username, c.Password, c.Host, c.Port, c.Name, c.SSLmode)
}

// DSN in the key=value form expected by the postgres driver
func (c DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", c.Host, c.Port, c.Username, c.Password, c.Name, c.SSLmode)
	if c.ApplicationName != "" {
		dsn += " application_name=" + c.ApplicationName
	}
	return dsn
}

// PostgresStore keeps options as rows of the options table
type PostgresStore struct {
	Conn *gorm.DB
}

// OpenPostgresStore connects to the database
func OpenPostgresStore(cfg DatabaseConfig) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres settings store")
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore constructor
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{Conn: db}
}

// Get an option by name
func (s *PostgresStore) Get(ctx context.Context, name string) (string, error) {
	option := model.Option{}
	err := s.Conn.WithContext(ctx).Where("name = ?", name).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", errors.Wrapf(err, "select option %s", name)
	}
	return option.Value, nil
}

// Set an option, inserting it when missing
func (s *PostgresStore) Set(ctx context.Context, name, value string) error {
	option := model.NewOption(name, value)
	err := s.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(option).Error
	if err != nil {
		return errors.Wrapf(err, "upsert option %s", name)
	}
	return nil
}

// Delete an option
func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	err := s.Conn.WithContext(ctx).Where("name = ?", name).Delete(&model.Option{}).Error
	if err != nil {
		return errors.Wrapf(err, "delete option %s", name)
	}
	return nil
}

// Close the database connection
func (s *PostgresStore) Close() error {
	db, err := s.Conn.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
