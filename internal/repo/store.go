package repo

import (
	"EmployeeManager/internal/model"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Store держит единственное подключение к БД на всё время жизни процесса.
// Подключение ленивое: недоступная БД не мешает старту, ошибка всплывает при первом обращении.
type Store struct {
	DB *gorm.DB

	initOnce singleflight.Group
	ready    atomic.Bool
}

// OpenStore выбирает диалект по DSN и открывает пул без проверки соединения.
func OpenStore(dsn string) (*Store, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		TranslateError:       true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{DB: db}, nil
}

// NewStore оборачивает уже открытое подключение (используется в тестах).
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func dialectorFor(dsn string) gorm.Dialector {
	if IsPostgresDSN(dsn) {
		return postgres.New(postgres.Config{DSN: dsn})
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

// IsPostgresDSN: URL со схемой postgres или key/value строка libpq.
func IsPostgresDSN(dsn string) bool {
	d := strings.TrimSpace(dsn)
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		strings.Contains(d, "host=")
}

// Ping проверяет доступность БД.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Ready проверяет соединение и один раз применяет миграции.
// Одновременные вызовы до первой успешной инициализации ждут одну общую проверку.
func (s *Store) Ready(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	_, err, _ := s.initOnce.Do("ready", func() (any, error) {
		if s.ready.Load() {
			return nil, nil
		}
		if err := s.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping database: %w", err)
		}
		if err := Migrate(s.DB.WithContext(ctx)); err != nil {
			return nil, err
		}
		s.ready.Store(true)
		return nil, nil
	})
	return err
}

// Check — текущее состояние БД: Ready плюс живой пинг на каждый вызов.
func (s *Store) Check(ctx context.Context) error {
	if err := s.Ready(ctx); err != nil {
		return err
	}
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate создаёт/обновляет схему для всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Employee{}, &model.Blob{}, &model.Attachment{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
