package player

import "testing"

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition(" alae ")
	if err != nil {
		t.Fatalf("ParsePosition error: %v", err)
	}
	if pos != PositionLeftWing {
		t.Fatalf("got %s, want %s", pos, PositionLeftWing)
	}

	if _, err := ParsePosition("GK"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
}

func TestPlayerValidate(t *testing.T) {
	number := 100
	cases := []struct {
		name    string
		player  Player
		wantErr bool
	}{
		{name: "valid", player: Player{Name: "Ana", Position: PositionMidfielder}},
		{name: "missing name", player: Player{Name: "  ", Position: PositionMidfielder}, wantErr: true},
		{name: "bad position", player: Player{Name: "Ana", Position: "XX"}, wantErr: true},
		{name: "number out of range", player: Player{Name: "Ana", Position: PositionForward, Number: &number}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.player.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateApply_ClearTeamWins(t *testing.T) {
	teamID := int64(3)
	other := int64(4)
	p := Player{ID: 1, Name: "Ana", Position: PositionGoalkeeper, TeamID: &teamID, TeamName: "Team 1"}

	got := Update{TeamID: &other, ClearTeam: true}.Apply(p)
	if got.TeamID != nil || got.TeamName != "" {
		t.Fatalf("expected team cleared, got %+v", got)
	}

	name := " Bia "
	got = Update{Name: &name, TeamID: &other}.Apply(p)
	if got.Name != "Bia" || !got.OnTeam(4) {
		t.Fatalf("unexpected partial update result: %+v", got)
	}
	if !p.OnTeam(3) {
		t.Fatalf("apply must not mutate the original team pointer")
	}
}
