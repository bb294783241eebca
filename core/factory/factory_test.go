package factory

import "testing"

type fakeSink struct{ Endpoint string }

type fakeSinkConf struct {
	Endpoint string `json:"endpoint"`
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*fakeSink]()
	if err := reg.Register("fake", func(conf map[string]any) (*fakeSink, error) {
		var c fakeSinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &fakeSink{Endpoint: c.Endpoint}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err := reg.Create(ModuleConfig{Type: "fake", Conf: map[string]any{"endpoint": "http://localhost:9090"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.Endpoint != "http://localhost:9090" {
		t.Fatalf("unexpected endpoint %q", s.Endpoint)
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register("nil", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "missing"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}
