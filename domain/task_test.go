package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestValidateTaskFields(t *testing.T) {
	trimmed, err := ValidateTaskFields("  Buy milk  ", "2%")
	if err != nil {
		t.Fatalf("valid fields rejected: %v", err)
	}
	if trimmed != "Buy milk" {
		t.Fatalf("trimmed title = %q", trimmed)
	}

	if _, err := ValidateTaskFields("", "x"); ValidationField(err) != "title" {
		t.Fatalf("empty title: %v", err)
	}
	if _, err := ValidateTaskFields(strings.Repeat("a", TitleMaxLen+1), ""); ValidationField(err) != "title" {
		t.Fatalf("long title: %v", err)
	}
	if _, err := ValidateTaskFields("ok", strings.Repeat("b", DescriptionMaxLen+1)); ValidationField(err) != "description" {
		t.Fatalf("long description: %v", err)
	}
	// limits are rune counts, not bytes
	if _, err := ValidateTaskFields(strings.Repeat("ä", TitleMaxLen), ""); err != nil {
		t.Fatalf("50 multibyte runes rejected: %v", err)
	}
}

func TestValidateUsername(t *testing.T) {
	trimmed, err := ValidateUsername(" Al ")
	if err != nil || trimmed != "Al" {
		t.Fatalf("got %q, %v", trimmed, err)
	}
	if _, err := ValidateUsername(" A "); ValidationField(err) != "username" {
		t.Fatalf("single char: %v", err)
	}
	if _, err := ValidateUsername("   "); ValidationField(err) != "username" {
		t.Fatalf("blank: %v", err)
	}
}

func TestMarkCompletedAndPending(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	task := Task{ID: "t1", Title: "x", CreatedAt: now}

	task.MarkCompleted(now.Add(time.Hour))
	if !task.IsCompleted || task.CompletedAt == nil || !task.CompletedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("after complete: %+v", task)
	}

	task.MarkPending()
	if task.IsCompleted || task.CompletedAt != nil {
		t.Fatalf("after pending: %+v", task)
	}
}

func TestFilterMatches(t *testing.T) {
	pending := Task{IsCompleted: false}
	completed := Task{IsCompleted: true}

	if !FilterAll.Matches(pending) || !FilterAll.Matches(completed) {
		t.Fatal("all must match everything")
	}
	if !FilterPending.Matches(pending) || FilterPending.Matches(completed) {
		t.Fatal("pending must match only incomplete tasks")
	}
	if FilterCompleted.Matches(pending) || !FilterCompleted.Matches(completed) {
		t.Fatal("completed must match only completed tasks")
	}
	if !Filter("garbage").Matches(pending) {
		t.Fatal("unknown filter behaves like all")
	}
}

func TestTaskJSONLayout(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(Task{
		ID:        "t1",
		Title:     "Buy milk",
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"id":"t1"`, `"createdAt":"2026-03-14T09:00:00Z"`, `"completedAt":null`, `"isCompleted":false`, `"description":""`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("json %s missing %s", raw, want)
		}
	}
}
