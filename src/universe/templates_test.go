package universe

import "testing"

func TestSettleTemplate(t *testing.T) {
	u, _ := newTestUniverse(t, 10, 10)
	if u.SettleTemplate("unknown") {
		t.Fatal("unknown template settled")
	}
	if !u.SettleTemplate("glider") {
		t.Fatal("glider rejected")
	}
	expectLive(t, u, [2]int{2, 1}, [2]int{3, 2}, [2]int{1, 3}, [2]int{2, 3}, [2]int{3, 3})

	//the glider moves one cell down-right every 4 generations
	for i := 0; i < 4; i++ {
		u.Step()
	}
	expectLive(t, u, [2]int{3, 2}, [2]int{4, 3}, [2]int{2, 4}, [2]int{3, 4}, [2]int{4, 4})
}

func TestAddTemplate(t *testing.T) {
	u, _ := newTestUniverse(t, 4, 4)
	u.AddTemplate(Template{Name: "diagonal", Coordinates: [][]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}})
	names := []string{}
	for _, tmpl := range u.Templates() {
		names = append(names, tmpl.Name)
	}
	want := []string{"blinker", "block", "diagonal", "glider", "sample"}
	if len(names) != len(want) {
		t.Fatalf("templates %v, expected %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("templates %v, expected %v", names, want)
		}
	}
	u.SettleTemplate("diagonal")
	expectLive(t, u, [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
}
