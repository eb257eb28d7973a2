package http

import (
	"context"
	"net/http"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
)

// ResourceLister is the minimal interface for the resource directory.
type ResourceLister interface {
	ListResources(ctx context.Context) ([]domain.ResourceInfo, error)
}

// HandleListResources returns the bookable-resource directory.
func HandleListResources(svc ResourceLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := svc.ListResources(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		out := make([]resourceRow, 0, len(resources))
		for _, res := range resources {
			out = append(out, resourceRow{
				ID:          res.ID,
				Kind:        string(res.Kind),
				DisplayName: res.DisplayName,
				Zone:        res.Zone,
				FloorNo:     res.FloorNo,
				Capacity:    res.Capacity,
				IsHotDesk:   res.IsHotDesk,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type resourceRow struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	Zone        string `json:"zone"`
	FloorNo     int    `json:"floor_no"`
	Capacity    *int   `json:"capacity,omitempty"`
	IsHotDesk   *bool  `json:"is_hot_desk,omitempty"`
}
