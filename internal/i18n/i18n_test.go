package i18n

import "testing"

func TestBundle_English(t *testing.T) {
	b, err := NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}
	if got := b.T("backup.complete"); got != "Backup completed successfully!" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := b.T("backup.world", "Skyblock"); got != "Backing up Skyblock..." {
		t.Errorf("unexpected formatted message: %q", got)
	}
}

func TestBundle_Spanish(t *testing.T) {
	b, err := NewBundle("es")
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}
	if got := b.T("backup.complete"); got != "¡Respaldo completado correctamente!" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestBundle_UnknownLanguageFallsBack(t *testing.T) {
	b, err := NewBundle("xx")
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}
	if got := b.T("backup.complete"); got != "Backup completed successfully!" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestBundle_MissingKeyReturnsKey(t *testing.T) {
	b, err := NewBundle("en")
	if err != nil {
		t.Fatalf("NewBundle failed: %v", err)
	}
	if got := b.T("no.such.key"); got != "no.such.key" {
		t.Errorf("expected key echo, got %q", got)
	}
}
