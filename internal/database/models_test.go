package database

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestMessageOrderingColumns(t *testing.T) {
	s, err := schema.Parse(&Message{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}

	sentAt := s.LookUpField("sent_at")
	if sentAt == nil || sentAt.DefaultValue != "clock_timestamp()" {
		t.Errorf("sent_at default = %+v, want clock_timestamp()", sentAt)
	}

	seq := s.LookUpField("seq")
	if seq == nil || seq.DataType != "bigserial" || !seq.NotNull {
		t.Errorf("seq = %+v, want not null bigserial", seq)
	}
}
