package syllabus

import (
	"testing"
)

func TestDomains_Shape(t *testing.T) {
	ds := Domains()
	if len(ds) != 5 {
		t.Fatalf("expected 5 domains, got %d", len(ds))
	}
	for _, d := range ds {
		if len(d.SubTopics) != 3 {
			t.Errorf("%s: expected 3 sub-topics, got %d", d.Name, len(d.SubTopics))
		}
	}
}

func TestDomains_ReturnsCopy(t *testing.T) {
	ds := Domains()
	ds[0].SubTopics[0] = "mutated"
	if Domains()[0].SubTopics[0] == "mutated" {
		t.Error("Domains exposed internal state")
	}
}

func TestScope_StatsTopic(t *testing.T) {
	tests := []struct {
		name   string
		scope  Scope
		want   string
		wantOK bool
	}{
		{"all", All(), "", false},
		{"domain", ForDomain("Implement and manage storage"), "Implement and manage storage", true},
		{"sub-topic rolls up", ForSubTopic("Implement and manage storage", "Blob Storage"), "Implement and manage storage", true},
		{"bare topic", Scope{Topic: "Storage Accounts"}, "Storage Accounts", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.scope.StatsTopic()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("StatsTopic() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	s, err := Resolve("Azure DNS", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Group != "Configure and manage virtual networking" || s.Topic != "Azure DNS" {
		t.Errorf("Resolve sub-topic = %+v", s)
	}

	s, err = Resolve("", "Monitor and back up Azure resources")
	if err != nil || s != ForDomain("Monitor and back up Azure resources") {
		t.Errorf("Resolve group only = %+v, %v", s, err)
	}

	s, err = Resolve("", "")
	if err != nil || !s.IsAll() {
		t.Errorf("Resolve empty = %+v, %v", s, err)
	}

	if _, err := Resolve("Kubernetes", ""); err == nil {
		t.Error("expected error for unknown topic")
	}
	if _, err := Resolve("Azure DNS", "Implement and manage storage"); err == nil {
		t.Error("expected error for mismatched group")
	}
}

func TestScope_Label(t *testing.T) {
	if got := All().Label(); got != "All topics" {
		t.Errorf("All label = %q", got)
	}
	if got := ForDomain("Implement and manage storage").Label(); got != "All Implement and manage storage" {
		t.Errorf("domain label = %q", got)
	}
	if got := ForSubTopic("Implement and manage storage", "Blob Storage").Label(); got != "Blob Storage" {
		t.Errorf("sub-topic label = %q", got)
	}
}

func TestExamLengths(t *testing.T) {
	got := ExamLengths()
	want := []int{10, 20, 30, 40, 50, 60}
	if len(got) != len(want) {
		t.Fatalf("ExamLengths = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExamLengths[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	for _, n := range []int{0, 5, 15, 70} {
		if ValidExamLength(n) {
			t.Errorf("ValidExamLength(%d) = true", n)
		}
	}
	if StepExamLength(10, -1) != 10 || StepExamLength(60, 1) != 60 || StepExamLength(30, 1) != 40 {
		t.Error("StepExamLength clamping broken")
	}
}
