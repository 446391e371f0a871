package xdom

import "testing"

func TestAggregatesBasic(t *testing.T) {
	q, err := Parse(`<root><n>1</n><n>2</n><n>3</n><n>4</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	nums := q.Find("n")
	if nums.Sum() != 10 {
		t.Fatalf("got sum %v", nums.Sum())
	}
	if nums.Average() != 2.5 {
		t.Fatalf("got average %v", nums.Average())
	}
	if min, ok := nums.Min(); !ok || min != 1 {
		t.Fatalf("got min %v %v", min, ok)
	}
	if max, ok := nums.Max(); !ok || max != 4 {
		t.Fatalf("got max %v %v", max, ok)
	}
	if med, ok := nums.Median(); !ok || med != 2.5 {
		t.Fatalf("got median %v %v", med, ok)
	}
}

func TestPercentileBoundaries(t *testing.T) {
	q, err := Parse(`<root><n>10</n><n>20</n><n>30</n><n>40</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	nums := q.Find("n")
	p0, err := nums.Percentile(0)
	if err != nil || p0 != 10 {
		t.Fatalf("p0 got %v %v", p0, err)
	}
	p100, err := nums.Percentile(100)
	if err != nil || p100 != 40 {
		t.Fatalf("p100 got %v %v", p100, err)
	}
	if _, err := nums.Percentile(-1); err == nil {
		t.Fatal("expected RangeError below 0")
	}
	if _, err := nums.Percentile(101); err == nil {
		t.Fatal("expected RangeError above 100")
	}
}

func TestModeTiesBrokenByFirstOccurrence(t *testing.T) {
	q, err := Parse(`<root><n>5</n><n>7</n><n>5</n><n>7</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	mode, ok := q.Find("n").Mode()
	if !ok || mode != 5 {
		t.Fatalf("got %v %v", mode, ok)
	}
}

func TestVarianceAndStandardDeviation(t *testing.T) {
	q, err := Parse(`<root><n>2</n><n>4</n><n>4</n><n>4</n><n>5</n><n>5</n><n>7</n><n>9</n></root>`)
	if err != nil {
		t.Fatal(err)
	}
	nums := q.Find("n")
	variance := nums.Variance()
	sd := nums.StandardDeviation()
	if sd*sd < variance-1e-9 || sd*sd > variance+1e-9 {
		t.Fatalf("StandardDeviation^2 should equal Variance, got %v vs %v", sd*sd, variance)
	}
}

func TestDistinctAttributes(t *testing.T) {
	q, err := Parse(`<root><a k="x"/><a k="y"/><a k="x"/></root>`)
	if err != nil {
		t.Fatal(err)
	}
	got := q.Find("a").DistinctAttributes("k")
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("got %v", got)
	}
}
