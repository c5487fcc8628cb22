package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/logger"
	"resto-pos/models"
)

const (
	backupPrefix     = "backup_"
	preRestorePrefix = "pre_restore_"
	backupStamp      = "20060102_150405"
	autoBackupEvery  = 24 * time.Hour

	ExportOrders     = "orders"
	ExportInventory  = "inventory"
	ExportAccounting = "accounting"
	ExportStaff      = "staff"
)

var ErrBackupUnsupported = errors.New("backups need the sqlite driver")

type BackupInfo struct {
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	Created     time.Time `json:"created"`
	Description string    `json:"description,omitempty"`
}

type BackupStats struct {
	Count  int        `json:"total_backups"`
	Bytes  int64      `json:"total_bytes"`
	Oldest *time.Time `json:"oldest_backup,omitempty"`
	Newest *time.Time `json:"newest_backup,omitempty"`
}

type backupMeta struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	BackupFile  string    `json:"backup_file"`
	OriginalDB  string    `json:"original_db"`
}

type BackupService interface {
	Create(ctx context.Context, description string, userID *uint) (*BackupInfo, error)
	List(ctx context.Context) ([]BackupInfo, error)
	Restore(ctx context.Context, filename string, userID *uint) (*BackupInfo, error)
	Delete(ctx context.Context, filename string, userID *uint) error
	Cleanup(ctx context.Context, keepDays int) (int, error)
	Stats(ctx context.Context) (BackupStats, error)
	// AutoBackup creates a backup when the newest one is older than a day.
	AutoBackup(ctx context.Context) (*BackupInfo, error)
	Export(ctx context.Context, kind string, r dtos.DateRange) ([]byte, error)
}

type backupService struct {
	db     *gorm.DB
	dir    string
	driver string
	source string
	log    *logger.Logger
	now    func() time.Time
}

func NewBackupService(db *gorm.DB, dir, driver, source string, log *logger.Logger) BackupService {
	return &backupService{
		db:     db,
		dir:    dir,
		driver: driver,
		source: source,
		log:    log.WithComponent("backup"),
		now:    time.Now,
	}
}

func (s *backupService) Create(ctx context.Context, description string, userID *uint) (*BackupInfo, error) {
	info, err := s.snapshot(ctx, backupPrefix, description)
	if err != nil {
		return nil, err
	}
	if err := recordAudit(s.db.WithContext(ctx), userID, "backup.create", "backup", nil, info); err != nil {
		s.log.Warn("audit write failed", "error", err)
	}
	s.log.Info("backup created", "file", info.Filename, "bytes", info.Size)
	return info, nil
}

// snapshot copies the live database with VACUUM INTO and writes the sidecar.
func (s *backupService) snapshot(ctx context.Context, prefix, description string) (*BackupInfo, error) {
	if s.driver != "sqlite" {
		return nil, ErrBackupUnsupported
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	now := s.now()
	name := prefix + now.Format(backupStamp) + ".db"
	for i := 1; fileExists(filepath.Join(s.dir, name)); i++ {
		name = fmt.Sprintf("%s%s_%d.db", prefix, now.Format(backupStamp), i)
	}
	path := filepath.Join(s.dir, name)

	if err := s.db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return nil, fmt.Errorf("snapshot database: %w", err)
	}

	meta, err := json.MarshalIndent(backupMeta{
		Timestamp:   now,
		Description: description,
		BackupFile:  name,
		OriginalDB:  s.source,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(sidecar(path), meta, 0o644); err != nil {
		return nil, fmt.Errorf("write backup metadata: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &BackupInfo{Filename: name, Size: st.Size(), Created: now, Description: description}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func sidecar(path string) string {
	return strings.TrimSuffix(path, ".db") + ".json"
}

func (s *backupService) List(ctx context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list []BackupInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		st, err := e.Info()
		if err != nil {
			continue
		}
		info := BackupInfo{Filename: e.Name(), Size: st.Size(), Created: st.ModTime()}
		if raw, err := os.ReadFile(sidecar(filepath.Join(s.dir, e.Name()))); err == nil {
			var meta backupMeta
			if json.Unmarshal(raw, &meta) == nil {
				info.Description = meta.Description
				if !meta.Timestamp.IsZero() {
					info.Created = meta.Timestamp
				}
			}
		}
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Created.After(list[j].Created) })
	return list, nil
}

// backupPath rejects anything that is not a plain backup file name in the backup dir.
func (s *backupService) backupPath(filename string) (string, error) {
	if filename == "" || filepath.Base(filename) != filename || !strings.HasSuffix(filename, ".db") ||
		!(strings.HasPrefix(filename, backupPrefix) || strings.HasPrefix(filename, preRestorePrefix)) {
		return "", fmt.Errorf("%w: bad backup name %q", ErrInvalidInput, filename)
	}
	path := filepath.Join(s.dir, filename)
	if !fileExists(path) {
		return "", fmt.Errorf("%w: backup %s", ErrNotFound, filename)
	}
	return path, nil
}

// Restore replaces every table's rows with the backup's, after taking a
// pre_restore_ safety snapshot of the current state.
func (s *backupService) Restore(ctx context.Context, filename string, userID *uint) (*BackupInfo, error) {
	if s.driver != "sqlite" {
		return nil, ErrBackupUnsupported
	}
	path, err := s.backupPath(filename)
	if err != nil {
		return nil, err
	}
	safety, err := s.snapshot(ctx, preRestorePrefix, "Before restoring "+filename)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := db.Exec("ATTACH DATABASE ? AS restore_src", path).Error; err != nil {
		return nil, fmt.Errorf("open backup: %w", err)
	}
	defer func() {
		if err := db.Exec("DETACH DATABASE restore_src").Error; err != nil {
			s.log.Warn("detach backup failed", "error", err)
		}
	}()

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, model := range models.All() {
			stmt := &gorm.Statement{DB: tx}
			if err := stmt.Parse(model); err != nil {
				return err
			}
			table := stmt.Schema.Table
			if err := tx.Exec(fmt.Sprintf("DELETE FROM main.%q", table)).Error; err != nil {
				return err
			}
			if err := tx.Exec(fmt.Sprintf("INSERT INTO main.%q SELECT * FROM restore_src.%q", table, table)).Error; err != nil {
				return fmt.Errorf("restore %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := recordAudit(db, userID, "backup.restore", "backup", nil,
		map[string]string{"restored": filename, "safety_backup": safety.Filename}); err != nil {
		s.log.Warn("audit write failed", "error", err)
	}
	s.log.Info("database restored", "file", filename, "safety_backup", safety.Filename)
	return safety, nil
}

func (s *backupService) Delete(ctx context.Context, filename string, userID *uint) error {
	path, err := s.backupPath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	if err := os.Remove(sidecar(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := recordAudit(s.db.WithContext(ctx), userID, "backup.delete", "backup", nil, map[string]string{"file": filename}); err != nil {
		s.log.Warn("audit write failed", "error", err)
	}
	return nil
}

func (s *backupService) Cleanup(ctx context.Context, keepDays int) (int, error) {
	if keepDays < 1 {
		return 0, fmt.Errorf("%w: keep days must be at least 1", ErrInvalidInput)
	}
	list, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().AddDate(0, 0, -keepDays)
	deleted := 0
	for _, b := range list {
		if !b.Created.Before(cutoff) {
			continue
		}
		if err := s.Delete(ctx, b.Filename, nil); err != nil {
			s.log.Warn("backup cleanup failed", "file", b.Filename, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func (s *backupService) Stats(ctx context.Context) (BackupStats, error) {
	list, err := s.List(ctx)
	if err != nil {
		return BackupStats{}, err
	}
	st := BackupStats{Count: len(list)}
	for _, b := range list {
		st.Bytes += b.Size
	}
	if len(list) > 0 {
		newest, oldest := list[0].Created, list[len(list)-1].Created
		st.Newest, st.Oldest = &newest, &oldest
	}
	return st, nil
}

func (s *backupService) AutoBackup(ctx context.Context) (*BackupInfo, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		if strings.HasPrefix(b.Filename, backupPrefix) && s.now().Sub(b.Created) < autoBackupEvery {
			return nil, nil
		}
	}
	return s.Create(ctx, "Auto daily backup", nil)
}

// Export renders one area of the data as indented JSON.
func (s *backupService) Export(ctx context.Context, kind string, r dtos.DateRange) ([]byte, error) {
	db := s.db.WithContext(ctx)
	data := map[string]any{"export_date": s.now().Format(time.RFC3339)}

	switch kind {
	case ExportOrders:
		var orders []models.Order
		q := db.Preload("Items").Order("id DESC")
		if r.From != "" && r.To != "" {
			q = q.Where("business_date BETWEEN ? AND ?", r.From, r.To)
		}
		if err := q.Find(&orders).Error; err != nil {
			return nil, err
		}
		data["orders"] = orders
	case ExportInventory:
		var ings []models.Ingredient
		var txs []models.StockTransaction
		if err := db.Order("name").Find(&ings).Error; err != nil {
			return nil, err
		}
		if err := db.Order("id DESC").Find(&txs).Error; err != nil {
			return nil, err
		}
		data["ingredients"] = ings
		data["stock_transactions"] = txs
	case ExportAccounting:
		var accounts []models.Account
		var ledger []models.LedgerTransaction
		var expenses []models.Expense
		eq := db.Order("date DESC")
		if r.From != "" && r.To != "" {
			eq = eq.Where("date BETWEEN ? AND ?", r.From, r.To)
		}
		if err := db.Order("id").Find(&accounts).Error; err != nil {
			return nil, err
		}
		if err := db.Order("id DESC").Find(&ledger).Error; err != nil {
			return nil, err
		}
		if err := eq.Find(&expenses).Error; err != nil {
			return nil, err
		}
		data["accounts"] = accounts
		data["transactions"] = ledger
		data["expenses"] = expenses
	case ExportStaff:
		var staff []models.Staff
		var attendance []models.Attendance
		var salaries []models.SalaryPayment
		if err := db.Order("name").Find(&staff).Error; err != nil {
			return nil, err
		}
		if err := db.Order("date DESC").Find(&attendance).Error; err != nil {
			return nil, err
		}
		if err := db.Order("year DESC, month DESC").Find(&salaries).Error; err != nil {
			return nil, err
		}
		data["staff"] = staff
		data["attendance"] = attendance
		data["salary_payments"] = salaries
	default:
		return nil, fmt.Errorf("%w: export must be orders, inventory, accounting or staff", ErrInvalidInput)
	}
	return json.MarshalIndent(data, "", "  ")
}
