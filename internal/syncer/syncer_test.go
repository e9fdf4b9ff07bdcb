package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gymbeauty/internal/mirror"
	"gymbeauty/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type fakeMirror struct {
	data        map[string]map[string]map[string]interface{}
	batchCalls  int
	failBatches int
	failSetIDs  map[string]bool
	pingErr     error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		data:       make(map[string]map[string]map[string]interface{}),
		failSetIDs: make(map[string]bool),
	}
}

func (f *fakeMirror) store(collection string, doc mirror.Document) {
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]map[string]interface{})
	}
	f.data[collection][doc.ID] = doc.Data
}

func (f *fakeMirror) SetBatch(_ context.Context, collection string, docs []mirror.Document) error {
	f.batchCalls++
	if f.failBatches > 0 {
		f.failBatches--
		return errors.New("batch rejected")
	}
	for _, d := range docs {
		f.store(collection, d)
	}
	return nil
}

func (f *fakeMirror) Set(_ context.Context, collection string, doc mirror.Document) error {
	if f.failSetIDs[doc.ID] {
		return errors.New("set rejected")
	}
	f.store(collection, doc)
	return nil
}

func (f *fakeMirror) Delete(_ context.Context, collection, id string) error {
	delete(f.data[collection], id)
	return nil
}

func (f *fakeMirror) Count(_ context.Context, collection string) (int64, error) {
	return int64(len(f.data[collection])), nil
}

func (f *fakeMirror) Ping(context.Context) error { return f.pingErr }

var dbSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:syncer_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{}, &model.Member{}, &model.CheckIn{}, &model.GymMembership{},
		&model.BeautyService{}, &model.GymInfo{}, &model.BeautyHealthInfo{}, &model.GymPayment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMembers(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		m := model.Member{
			FullName: fmt.Sprintf("Member %d", i),
			QRCodeID: fmt.Sprintf("TGC%06d", i),
		}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("seed member: %v", err)
		}
	}
}

func TestSyncAllMirrorsAllTables(t *testing.T) {
	db := newTestDB(t)
	seedMembers(t, db, 3)
	db.Create(&model.User{Username: "admin", Password: "hash", Role: "admin"})
	db.Create(&model.CheckIn{MemberID: 1, QRCodeID: "TGC000000", Date: time.Now(), CheckinDay: "2025-03-10"})

	fm := newFakeMirror()
	res := New(db, fm).SyncAll(context.Background())

	if !res.Success {
		t.Fatalf("sync failed: %v", res.Errors)
	}
	if got := res.Entities["members"]; got.Succeeded != 3 || got.Failed != 0 {
		t.Fatalf("members = %+v", got)
	}
	if got := res.Entities["checkins"]; got.Succeeded != 1 {
		t.Fatalf("checkins = %+v", got)
	}
	if len(fm.data["members"]) != 3 {
		t.Fatalf("mirrored members = %d", len(fm.data["members"]))
	}
	for _, table := range Tables {
		v, ok := res.Verification[table]
		if !ok {
			t.Fatalf("no verification for %s", table)
		}
		if !v.Match {
			t.Fatalf("%s out of sync: %+v", table, v)
		}
	}
}

func TestSyncAllScrubsPasswords(t *testing.T) {
	db := newTestDB(t)
	db.Create(&model.User{Username: "admin", Password: "secret-hash", Role: "admin"})

	fm := newFakeMirror()
	New(db, fm).SyncAll(context.Background())

	for _, doc := range fm.data["users"] {
		if _, ok := doc["password"]; ok {
			t.Fatal("password column must not be mirrored")
		}
	}
}

func TestSyncAllRetriesFailedBatchIndividually(t *testing.T) {
	db := newTestDB(t)
	seedMembers(t, db, 5)

	fm := newFakeMirror()
	fm.failBatches = 1
	fm.failSetIDs["3"] = true

	res := New(db, fm).SyncAll(context.Background())

	got := res.Entities["members"]
	if got.Attempted != 5 || got.Succeeded != 4 || got.Failed != 1 {
		t.Fatalf("members = %+v", got)
	}
	if res.Success {
		t.Fatal("run with failed rows must not report success")
	}
	if len(fm.data["members"]) != 4 {
		t.Fatalf("mirrored members = %d", len(fm.data["members"]))
	}
}

func TestSyncAllIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedMembers(t, db, 2)

	fm := newFakeMirror()
	s := New(db, fm)
	s.SyncAll(context.Background())
	res := s.SyncAll(context.Background())

	if !res.Success {
		t.Fatalf("second sync failed: %v", res.Errors)
	}
	if len(fm.data["members"]) != 2 {
		t.Fatalf("mirrored members = %d after double sync", len(fm.data["members"]))
	}
}

func TestStatusReportsPerTableCounts(t *testing.T) {
	db := newTestDB(t)
	seedMembers(t, db, 2)

	fm := newFakeMirror()
	s := New(db, fm)

	status, err := s.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st := status["members"]; st.Local != 2 || st.Remote != 0 || st.InSync {
		t.Fatalf("members status = %+v", st)
	}

	s.SyncAll(context.Background())
	status, err = s.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st := status["members"]; !st.InSync {
		t.Fatalf("members status after sync = %+v", st)
	}
}
