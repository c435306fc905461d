package examples

import (
	"strings"
	"testing"
)

func TestExamples(t *testing.T) {
	names := Names()
	for _, want := range []string{"add", "cond", "evenodd", "fact", "higher", "inc", "loop", "nested", "sub"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("no example called %s in %v", want, names)
		}
	}
	for _, name := range names {
		src, ok := Get(name)
		if !ok || !strings.Contains(src, "main:") {
			t.Fatalf("example %s has no main", name)
		}
		if Summary(name) == "" {
			t.Fatalf("example %s has no summary", name)
		}
	}
	if Summary("inc") != `(\x. x + 1) 5` {
		t.Fatalf("wrong summary for inc: %q", Summary("inc"))
	}
	if _, ok := Get("nonesuch"); ok {
		t.Fatalf("found a nonexistent example")
	}
}
