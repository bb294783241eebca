package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/relokit/settler/app"
	"github.com/relokit/settler/config"
	"github.com/relokit/settler/core/model"
	"github.com/relokit/settler/infra/logger"
	"github.com/relokit/settler/pkg/export"
)

var profilePath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a settlement plan from a customer profile",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "customer profile file (json)")
	_ = planCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	profile, err := loadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Plan(ctx, profile)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cfg.Export.Path)
	if err != nil {
		return err
	}
	defer closeOut()

	switch cfg.Export.Format {
	case "csv":
		return export.WriteCSV(out, res.Plan)
	default:
		return export.WriteJSON(out, res.Plan)
	}
}

// profileFile is the on-disk profile shape; the arrival date is a plain
// YYYY-MM-DD string.
type profileFile struct {
	Name           string            `json:"name"`
	ArrivalDate    string            `json:"arrival_date"`
	OfficeAddress  string            `json:"office_address"`
	HousingBudget  int               `json:"housing_budget"`
	PreferredAreas []string          `json:"preferred_areas"`
	Bedrooms       int               `json:"bedrooms"`
	FamilySize     int               `json:"family_size"`
	HasChildren    bool              `json:"has_children"`
	NeedsVehicle   bool              `json:"needs_vehicle"`
	RemoteWork     bool              `json:"remote_work"`
	TempStayDays   int               `json:"temp_stay_days"`
	KeyDates       map[string]string `json:"key_dates"`
}

func loadProfile(path string) (model.CustomerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CustomerProfile{}, err
	}
	var pf profileFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return model.CustomerProfile{}, err
	}
	arrival, err := time.Parse("2006-01-02", pf.ArrivalDate)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("arrival_date: %w", err)
	}
	return model.CustomerProfile{
		Name:           pf.Name,
		ArrivalDate:    arrival,
		OfficeAddress:  pf.OfficeAddress,
		HousingBudget:  pf.HousingBudget,
		PreferredAreas: pf.PreferredAreas,
		Bedrooms:       pf.Bedrooms,
		FamilySize:     pf.FamilySize,
		HasChildren:    pf.HasChildren,
		NeedsVehicle:   pf.NeedsVehicle,
		RemoteWork:     pf.RemoteWork,
		TempStayDays:   pf.TempStayDays,
		KeyDates:       pf.KeyDates,
	}, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
