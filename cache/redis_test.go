package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func mustMarshal(t *testing.T, e *Entry) []byte {
	t.Helper()
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}
	return data
}

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "test:")

	entry := &Entry{
		Data:       json.RawMessage(`"myvalue"`),
		Timestamp:  time.Now().UnixMilli(),
		TTLSeconds: 3600,
		SizeBytes:  9,
	}
	mock.ExpectGet("test:mykey").SetVal(string(mustMarshal(t, entry)))

	got, ok, err := cache.GetEntry("mykey")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(got.Data) != `"myvalue"` {
		t.Errorf("Expected %q, got %s", `"myvalue"`, got.Data)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "test:")

	mock.ExpectGet("test:mykey").RedisNil()

	_, ok, err := cache.GetEntry("mykey")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if ok {
		t.Error("Expected cache miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Expired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "test:")

	// Entry TTL lapsed but redis has not evicted the key yet.
	entry := &Entry{
		Data:       json.RawMessage(`"stale"`),
		Timestamp:  time.Now().UnixMilli() - 10_000,
		TTLSeconds: 1,
		SizeBytes:  7,
	}
	mock.ExpectGet("test:mykey").SetVal(string(mustMarshal(t, entry)))

	_, ok, err := cache.GetEntry("mykey")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if ok {
		t.Error("Expired entry should be a miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "test:")

	entry := &Entry{
		Data:       json.RawMessage(`"myvalue"`),
		Timestamp:  1700000000000,
		TTLSeconds: 3600,
		SizeBytes:  9,
	}
	// The redis key expires together with the entry's own TTL.
	mock.ExpectSet("test:mykey", mustMarshal(t, entry), 3600*time.Second).SetVal("OK")

	if err := cache.SetEntry("mykey", entry); err != nil {
		t.Errorf("SetEntry failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "test:")

	mock.ExpectDel("test:mykey").SetVal(1)

	if err := cache.Delete("mykey"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	// Empty prefix falls back to the default.
	cache := NewRedisCacheFromClient(db, "")

	entry := &Entry{
		Data:       json.RawMessage(`"v"`),
		Timestamp:  time.Now().UnixMilli(),
		TTLSeconds: 3600,
		SizeBytes:  3,
	}
	mock.ExpectGet("lingosnip:catalog:fr-FR").SetVal(string(mustMarshal(t, entry)))

	_, ok, err := cache.GetEntry("catalog:fr-FR")
	if err != nil || !ok {
		t.Errorf("Expected hit under default prefix (ok=%v, err=%v)", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	cache := NewRedisCacheFromClient(db, "test:")

	mock.ExpectPing().SetVal("PONG")

	if err := cache.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestRedisCache_Close(t *testing.T) {
	db, mock := redismock.NewClientMock()

	cache := NewRedisCacheFromClient(db, "test:")

	if err := cache.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	_ = mock // Silence unused warning
}
