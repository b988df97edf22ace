package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugh/orgroster/internal/auth"
	"github.com/hugh/orgroster/internal/store"
)

type SeedCmd struct {
	OrgName   string `help:"Organisation name." default:"Default Organisation" env:"SEED_ORG_NAME"`
	AdminName string `help:"Admin display name." default:"Admin" env:"ADMIN_NAME"`
	Email     string `help:"Admin email." default:"admin@example.com" env:"ADMIN_EMAIL"`
	Password  string `help:"Admin password." default:"admin123!" env:"ADMIN_PASSWORD"`
	Sample    bool   `help:"Also create sample employees and teams." default:"false"`
}

var sampleEmployees = []store.EmployeeFields{
	{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
	{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
	{FirstName: "Katherine", LastName: "Johnson", Email: "katherine@example.com"},
}

var sampleTeams = []string{"Engineering", "Operations"}

func (c *SeedCmd) Run(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	jwtService := auth.NewJWTService(rt.cfg.JWT.Secret, rt.cfg.JWT.Expiry(), rt.cfg.JWT.Issuer)
	authService := auth.NewService(rt.db, jwtService, auth.ServiceConfig{
		BcryptCost:     rt.cfg.Auth.BcryptCost,
		UniqueOrgNames: rt.cfg.Tenancy.UniqueOrgNames,
	}, rt.logger)

	resp, err := authService.Register(ctx, auth.RegisterInput{
		OrgName:   c.OrgName,
		AdminName: c.AdminName,
		Email:     c.Email,
		Password:  c.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			rt.logger.Info("admin user already exists", "email", c.Email)
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	orgID := resp.User.OrganisationID
	rt.logger.Info("admin user created",
		"email", resp.User.Email,
		"organisation_id", orgID,
	)
	fmt.Printf("Token: %s\n", resp.Token)

	if !c.Sample {
		return nil
	}

	employees := store.NewEmployeeStore(rt.db, rt.logger)
	teams := store.NewTeamStore(rt.db, rt.logger)
	assignments := store.NewAssignmentStore(rt.db, employees, teams, rt.logger)

	var teamIDs []uint
	for _, name := range sampleTeams {
		team, err := teams.Create(ctx, orgID, store.TeamFields{Name: name})
		if err != nil {
			return fmt.Errorf("creating team %q: %w", name, err)
		}
		teamIDs = append(teamIDs, team.ID)
	}

	for i, fields := range sampleEmployees {
		emp, err := employees.Create(ctx, orgID, fields)
		if err != nil {
			return fmt.Errorf("creating employee %q: %w", fields.Email, err)
		}
		if _, err := assignments.Assign(ctx, orgID, emp.ID, teamIDs[i%len(teamIDs)]); err != nil {
			return fmt.Errorf("assigning employee %q: %w", fields.Email, err)
		}
	}

	rt.logger.Info("sample data created",
		"organisation_id", orgID,
		"employees", len(sampleEmployees),
		"teams", len(sampleTeams),
	)
	return nil
}
