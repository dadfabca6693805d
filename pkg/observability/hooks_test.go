package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPlacementHooks{}
	p.OnPlace(ctx, "drop", "pg-1", false, false, time.Millisecond, nil)
	p.OnEdit(ctx, "unit.add", "pg-1", time.Millisecond, errors.New("boom"))

	s := NoopStorageHooks{}
	s.OnLoad(ctx, "file", true)
	s.OnSave(ctx, "redis", 2048)
	s.OnDelete(ctx, "mongo")

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/planograms/{id}")
	h.OnResponse(ctx, "GET", "/planograms/{id}", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Placement().(NoopPlacementHooks); !ok {
		t.Error("Placement() should return NoopPlacementHooks by default")
	}
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Error("Storage() should return NoopStorageHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPlacement := &testPlacementHooks{}
	SetPlacementHooks(customPlacement)
	if Placement() != customPlacement {
		t.Error("SetPlacementHooks should set custom hooks")
	}

	customStorage := &testStorageHooks{}
	SetStorageHooks(customStorage)
	if Storage() != customStorage {
		t.Error("SetStorageHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Placement().(NoopPlacementHooks); !ok {
		t.Error("Reset() should restore NoopPlacementHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testStorageHooks{}
	SetStorageHooks(custom)
	SetStorageHooks(nil)

	if Storage() != custom {
		t.Error("SetStorageHooks(nil) should be ignored")
	}

	Reset()
}

type testPlacementHooks struct{ NoopPlacementHooks }
type testStorageHooks struct{ NoopStorageHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
