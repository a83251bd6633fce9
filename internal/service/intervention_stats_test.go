package service

import (
	"testing"

	"intervention-service/internal/repository"
)

func TestBuildMonthlyStats(t *testing.T) {
	rows := []repository.MonthlyTypeCount{
		{Month: 1, TypeName: "Maintenance générale", Count: 4},
		{Month: 1, TypeName: "Réparation crevaison", Count: 2},
		{Month: 3, TypeName: "maintenance express", Count: 1},
		{Month: 3, TypeName: "Reparation freins", Count: 5},
		{Month: 6, TypeName: "Diagnostic", Count: 9}, // neither bucket
		{Month: 0, TypeName: "maintenance", Count: 7},
		{Month: 13, TypeName: "maintenance", Count: 7},
	}

	stats := BuildMonthlyStats(rows)

	if len(stats) != 12 {
		t.Fatalf("got %d months, want 12", len(stats))
	}
	if stats[0].Month != "January" || stats[11].Month != "December" {
		t.Errorf("month labels = %q..%q, want January..December", stats[0].Month, stats[11].Month)
	}

	if stats[0].Maintenance != 4 || stats[0].Repair != 2 {
		t.Errorf("January = %+v, want maintenance=4 repair=2", stats[0])
	}
	if stats[2].Maintenance != 1 || stats[2].Repair != 5 {
		t.Errorf("March = %+v, want maintenance=1 repair=5", stats[2])
	}
	if stats[5].Maintenance != 0 || stats[5].Repair != 0 {
		t.Errorf("June = %+v, unbucketed type should count nowhere", stats[5])
	}

	var total int64
	for _, stat := range stats {
		total += stat.Maintenance
	}
	if total != 5 {
		t.Errorf("total maintenance = %d, out-of-range months must be ignored", total)
	}
}
