package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"intervention-service/internal/apiclient"
	"intervention-service/internal/logger"
)

var (
	apiURL string
	token  string
)

func main() {
	root := &cobra.Command{
		Use:           "hchctl",
		Short:         "Command line access to the intervention service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", envOr("HCH_API_URL", "http://localhost:8080"), "base URL of the intervention service")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("HCH_TOKEN"), "bearer token (defaults to HCH_TOKEN)")

	root.AddCommand(loginCmd(), zonesCmd(), statsCmd(), generateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() *apiclient.Client {
	log := logger.New("development")
	return apiclient.New(apiURL, apiclient.StaticTokenSource(token), log)
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			issued, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Println(issued)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func zonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Manage maintenance zones",
	}
	cmd.AddCommand(zonesListCmd(), zonesCreateCmd(), zonesDeleteCmd())
	return cmd
}

func zonesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List zones",
		RunE: func(cmd *cobra.Command, args []string) error {
			zones, err := newClient().ListZones(cmd.Context())
			if err != nil {
				return err
			}
			for _, zone := range zones {
				assignee := "-"
				if zone.Technician != nil {
					assignee = fmt.Sprintf("%s %s", zone.Technician.FirstName, zone.Technician.LastName)
				}
				fmt.Printf("%d\t%s\t%s\t%d points\t%s\n", zone.ID, zone.Name, zone.Color, len(zone.Coordinates), assignee)
			}
			return nil
		},
	}
}

func zonesCreateCmd() *cobra.Command {
	var name, color string
	var points []float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a zone from lat,lng point pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(points)%2 != 0 || len(points) < 6 {
				return fmt.Errorf("--points needs at least three lat,lng pairs")
			}

			coordinates := make([]apiclient.Coordinate, 0, len(points)/2)
			for i := 0; i+1 < len(points); i += 2 {
				coordinates = append(coordinates, apiclient.Coordinate{
					Latitude:  points[i],
					Longitude: points[i+1],
				})
			}

			id, err := newClient().CreateZone(cmd.Context(), apiclient.ZoneInput{
				Name:        name,
				Color:       color,
				Coordinates: coordinates,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created zone %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "zone name")
	cmd.Flags().StringVar(&color, "color", "#FF5733", "zone color (hex)")
	cmd.Flags().Float64SliceVar(&points, "points", nil, "flat list of lat,lng values")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("points")
	return cmd
}

func zonesDeleteCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteZone(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted zone %d\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "zone id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show monthly maintenance and repair counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := newClient().InterventionStats(cmd.Context())
			if err != nil {
				return err
			}
			for _, stat := range stats {
				fmt.Printf("%-12s maintenance=%d repair=%d\n", stat.Month, stat.Maintenance, stat.Repair)
			}
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	var model int64
	var technicians []int64
	var from, to string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Apply a planning model to technicians over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := newClient().GenerateInterventions(cmd.Context(), apiclient.GenerateInput{
				Model:       model,
				Technicians: technicians,
				From:        strings.TrimSpace(from),
				To:          strings.TrimSpace(to),
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %d interventions\n", created)
			return nil
		},
	}

	cmd.Flags().Int64Var(&model, "model", 0, "planning model id")
	cmd.Flags().Int64SliceVar(&technicians, "technicians", nil, "technician ids")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("technicians")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
