package paginate

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// synthetic provider with n pages of pageSize items each, last page possibly partial
func syntheticFetch(n, pageSize, lastPageSize int, calls *int) func(context.Context, int) (Page[int], error) {
	return func(_ context.Context, page int) (Page[int], error) {
		*calls++
		size := pageSize
		if page == n-1 {
			size = lastPageSize
		}
		items := make([]int, size)
		for i := range items {
			items[i] = page*pageSize + i
		}
		return Page[int]{Items: items, Last: page == n-1}, nil
	}
}

func TestRun_FetchesEveryPage(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		t.Run(fmt.Sprintf("pages=%d", n), func(t *testing.T) {
			calls := 0
			items, err := Run(context.Background(), 0, syntheticFetch(n, 10, 10, &calls), Options{})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if calls != n {
				t.Errorf("issued %d requests, want %d", calls, n)
			}
			if len(items) != n*10 {
				t.Errorf("got %d items, want %d", len(items), n*10)
			}
		})
	}
}

func TestRun_PartialFinalPage(t *testing.T) {
	calls := 0
	items, err := Run(context.Background(), 0, syntheticFetch(3, 10, 4, &calls), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(items) != 24 {
		t.Errorf("got %d items, want 24", len(items))
	}
}

func TestRun_PreservesOrderAcrossPages(t *testing.T) {
	calls := 0
	items, err := Run(context.Background(), 0, syntheticFetch(4, 5, 5, &calls), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, item := range items {
		if item != i {
			t.Fatalf("items[%d] = %d, order not preserved", i, item)
		}
	}
}

func TestRun_EmptyPageIsNotTerminal(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, page int) (Page[string], error) {
		calls++
		switch page {
		case 0:
			return Page[string]{Items: []string{"a"}}, nil
		case 1:
			return Page[string]{}, nil // empty but not last
		default:
			return Page[string]{Items: []string{"b"}, Last: true}, nil
		}
	}

	items, err := Run(context.Background(), 0, fetch, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 3 {
		t.Errorf("issued %d requests, want 3", calls)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestRun_StartIndexIsExplicit(t *testing.T) {
	var pagesSeen []int
	fetch := func(_ context.Context, page int) (Page[int], error) {
		pagesSeen = append(pagesSeen, page)
		return Page[int]{Last: page == 3}, nil
	}

	if _, err := Run(context.Background(), 1, fetch, Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []int{1, 2, 3}
	if len(pagesSeen) != len(want) {
		t.Fatalf("pages %v, want %v", pagesSeen, want)
	}
	for i := range want {
		if pagesSeen[i] != want[i] {
			t.Fatalf("pages %v, want %v", pagesSeen, want)
		}
	}
}

func TestRun_ErrorDiscardsPartialResults(t *testing.T) {
	boom := errors.New("rate limited")
	fetch := func(_ context.Context, page int) (Page[int], error) {
		if page == 2 {
			return Page[int]{}, boom
		}
		return Page[int]{Items: []int{page}}, nil
	}

	items, err := Run(context.Background(), 0, fetch, Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if items != nil {
		t.Errorf("got partial results %v, want nil", items)
	}
}

func TestRun_MaxPages(t *testing.T) {
	fetch := func(_ context.Context, page int) (Page[int], error) {
		return Page[int]{Items: []int{page}}, nil // never signals last
	}

	_, err := Run(context.Background(), 0, fetch, Options{MaxPages: 50})
	if !errors.Is(err, ErrTooManyPages) {
		t.Fatalf("err = %v, want ErrTooManyPages", err)
	}
}
