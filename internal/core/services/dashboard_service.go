package services

import (
	"context"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/policy"
)

const recentBillCount = 5

// DashboardService aggregates workspace statistics for the landing
// view.
type DashboardService struct {
	wsRepo repositories.WorkspaceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(wsRepo repositories.WorkspaceRepository) *DashboardService {
	return &DashboardService{wsRepo: wsRepo}
}

// DashboardStats represents the dashboard response
type DashboardStats struct {
	VehicleCount   int                `json:"vehicle_count"`
	ActiveVehicles int                `json:"active_vehicles"`
	ClientCount    int                `json:"client_count"`
	BillCount      int                `json:"bill_count"`
	FolderCount    int                `json:"folder_count"`
	Revenue        map[string]float64 `json:"revenue"`
	RecentBills    []domain.Bill      `json:"recent_bills"`
}

// GetStats computes counts and per-currency revenue over the caller's
// workspace. Revenue sums the stored totals without recomputing them.
// For billing officers the fleet numbers are zeroed out to match the
// sections they can open.
func (s *DashboardService) GetStats(ctx context.Context, sess domain.Session) (*DashboardStats, error) {
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		ClientCount: len(ws.Clients),
		BillCount:   len(ws.Bills),
		FolderCount: len(ws.Folders),
		Revenue:     make(map[string]float64),
		RecentBills: []domain.Bill{},
	}

	if policy.CanPerform(sess, policy.ActionView, domain.KindVehicle) {
		stats.VehicleCount = len(ws.Vehicles)
		for _, v := range ws.Vehicles {
			if v.Status == "Active" {
				stats.ActiveVehicles++
			}
		}
	}

	for _, b := range ws.Bills {
		stats.Revenue[b.Currency] += b.Total
	}

	// Bills are stored newest first.
	n := recentBillCount
	if len(ws.Bills) < n {
		n = len(ws.Bills)
	}
	stats.RecentBills = append(stats.RecentBills, ws.Bills[:n]...)

	return stats, nil
}
