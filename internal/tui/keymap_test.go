package tui

import "testing"

func TestKeyMapApplyOverrides(t *testing.T) {
	keys := newKeyMap().apply(KeyOverrides{
		Today:   "g",
		NewTask: "a",
		Yank:    "",
	})
	if got := keys.today.Keys(); len(got) != 1 || got[0] != "g" {
		t.Fatalf("today keys = %v", got)
	}
	if got := keys.newTask.Keys(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("newTask keys = %v", got)
	}
	// Blank override keeps the default binding.
	if got := keys.yankTicket.Keys(); len(got) != 1 || got[0] != "y" {
		t.Fatalf("yank keys = %v", got)
	}
}

func TestKeyMapHelpIsPopulated(t *testing.T) {
	keys := newKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help is empty")
	}
	rows := keys.FullHelp()
	if len(rows) == 0 {
		t.Fatal("full help is empty")
	}
	for i, row := range rows {
		if len(row) == 0 {
			t.Fatalf("full help row %d is empty", i)
		}
	}
}
