package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gymbeauty/internal/config"
	"gymbeauty/internal/middleware"
	"gymbeauty/internal/mirror"
	"gymbeauty/internal/model"
	"gymbeauty/internal/syncer"
	ws "gymbeauty/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	gorillaws "github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func TestSyncEndpointsReportMissingConfig(t *testing.T) {
	token := makeToken(t, "admin")
	r := gin.New()
	NewSyncHandler(nil, config.FirebaseConfig{}, nil).RegisterRoutes(r.Group("/api"))

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/sync"},
		{http.MethodGet, "/api/sync/status"},
		{http.MethodGet, "/api/sync/test"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s status = %d, want 503", route.method, route.path, w.Code)
		}
	}
}

func TestSyncEndpointsAdminOnly(t *testing.T) {
	token := makeToken(t, "staff")
	r := gin.New()
	NewSyncHandler(nil, config.FirebaseConfig{}, nil).RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

// nullMirror accepts every write; it only tracks counts so the post-sync
// verification lines up.
type nullMirror struct {
	counts map[string]int64
}

func (m *nullMirror) SetBatch(_ context.Context, collection string, docs []mirror.Document) error {
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[collection] += int64(len(docs))
	return nil
}

func (m *nullMirror) Set(context.Context, string, mirror.Document) error { return nil }

func (m *nullMirror) Delete(context.Context, string, string) error { return nil }

func (m *nullMirror) Count(_ context.Context, collection string) (int64, error) {
	return m.counts[collection], nil
}

func (m *nullMirror) Ping(context.Context) error { return nil }

var syncDBSeq int

func openSyncDB(t *testing.T) *gorm.DB {
	t.Helper()
	syncDBSeq++
	dsn := fmt.Sprintf("file:sync_handler_%d?mode=memory&cache=shared", syncDBSeq)
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

func TestSyncRunBroadcastsCompletion(t *testing.T) {
	db := openSyncDB(t)
	if err := db.Create(&model.Member{FullName: "Aziza", QRCodeID: "TGCSYNC01"}).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ws.ServeWs(hub, c, middleware.GetJWTSecret()) })
	NewSyncHandler(syncer.New(db, &nullMirror{}), config.FirebaseConfig{}, hub).RegisterRoutes(r.Group("/api"))

	srv := httptest.NewServer(r)
	defer srv.Close()

	token := makeToken(t, "admin")
	conn, _, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?token="+token, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/sync", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("run sync: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var event struct {
		Event string        `json:"event"`
		Data  syncer.Result `json:"data"`
	}
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Event != ws.EventSyncCompleted {
		t.Fatalf("event = %q, want %q", event.Event, ws.EventSyncCompleted)
	}
	if !event.Data.Success {
		t.Fatalf("broadcast result not successful: %+v", event.Data)
	}
}
