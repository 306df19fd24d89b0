package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	id := NewGenerator().GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestTypedIDGeneration(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
	}{
		{string(NewRequestID()), RequestPrefix},
		{string(NewConnectionID()), ConnectionPrefix},
	}

	for _, tt := range tests {
		if !strings.HasPrefix(tt.id, tt.prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", tt.prefix, tt.id)
		}
		if !IsValidPrefixed(tt.id, tt.prefix) {
			t.Errorf("ID should validate with prefix %s: %s", tt.prefix, tt.id)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(NewGenerator().GenerateString()) {
		t.Error("Generated ULID should be valid")
	}

	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestIsValidPrefixedRejectsWrongPrefix(t *testing.T) {
	reqID := string(NewRequestID())

	if IsValidPrefixed(reqID, ConnectionPrefix) {
		t.Errorf("request ID should not validate as connection ID: %s", reqID)
	}
	if IsValidPrefixed("req_notaulid", RequestPrefix) {
		t.Error("malformed ULID part should not validate")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	idChan := make(chan string, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- gen.GenerateString()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[string]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate ID found in concurrent generation: %s", id)
		}
		seen[id] = true
	}

	if len(seen) != goroutines*idsPerGoroutine {
		t.Errorf("Expected %d unique IDs, got %d", goroutines*idsPerGoroutine, len(seen))
	}
}

func TestDefaultGenerator(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}

func BenchmarkGenerateWithPrefix(b *testing.B) {
	gen := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gen.GenerateWithPrefix(RequestPrefix)
	}
}
