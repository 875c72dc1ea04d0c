package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "As Ks",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
			},
		},
		{
			name:  "tens in both notations",
			input: "10h Td",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Diamonds, Rank: Ten},
			},
		},
		{
			name:  "low cards",
			input: "5h 4d 3c 2s",
			expected: []Card{
				{Suit: Hearts, Rank: Five},
				{Suit: Diamonds, Rank: Four},
				{Suit: Clubs, Rank: Three},
				{Suit: Spades, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "as KH qD jc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "Xs Ks",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "As Kx",
			wantErr: true,
		},
		{
			name:    "one rank",
			input:   "1s",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustParseCards(t *testing.T) {
	cards := MustParseCards("As Ks")
	expected := []Card{
		{Suit: Spades, Rank: Ace},
		{Suit: Spades, Rank: King},
	}
	if !cardsEqual(cards, expected) {
		t.Errorf("MustParseCards() = %v, want %v", cards, expected)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func TestCardValues(t *testing.T) {
	for rank := Ace; rank <= King; rank++ {
		want := int(rank)
		if rank >= Ten {
			want = 10
		}
		if got := NewCard(Clubs, rank).Value(); got != want {
			t.Errorf("%s value = %d, want %d", rank.Name(), got, want)
		}
	}
}

func TestCardLabels(t *testing.T) {
	card := NewCard(Hearts, Queen)
	if card.String() != "Q♥" {
		t.Errorf("String() = %q", card.String())
	}
	if card.Label() != "Queen of hearts" {
		t.Errorf("Label() = %q", card.Label())
	}
	if !card.IsRed() || !card.IsFaceCard() || card.IsAce() {
		t.Errorf("unexpected predicates for %s", card)
	}
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Rank != b[i].Rank || a[i].Suit != b[i].Suit {
			return false
		}
	}
	return true
}
