// Command seed bootstraps a fresh database: the first admin account and a
// starter set of clinics and tips. Safe to re-run; existing rows are kept.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/mobimama/mobimama-api/internal/config"
	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository/postgres"
	"github.com/mobimama/mobimama-api/internal/session"
	authService "github.com/mobimama/mobimama-api/internal/service/auth"
	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/logger"
)

func main() {
	adminUser := flag.String("admin-user", "admin", "admin username to provision")
	adminPass := flag.String("admin-pass", "", "admin password (required)")
	withSamples := flag.Bool("samples", true, "seed sample clinics and tips")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.New(nil)

	if *adminPass == "" {
		log.Fatal(nil, "admin-pass is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	authSvc := authService.NewService(userRepo, session.NewMemoryStore(time.Minute), session.NewTokenCodec(cfg.Secrets.SessionSecret, time.Minute))

	if _, err := authSvc.ProvisionAdmin(ctx, *adminUser, *adminPass); err != nil {
		if apperror.IsKind(err, apperror.KindValidation) {
			log.Info("admin already provisioned", map[string]interface{}{"username": *adminUser})
		} else {
			log.Fatal(err, "failed to provision admin")
		}
	} else {
		log.Info("admin provisioned", map[string]interface{}{"username": *adminUser})
	}

	if !*withSamples {
		return
	}

	clinicRepo := postgres.NewClinicRepository(base)
	clinics, err := clinicRepo.List(ctx)
	if err != nil {
		log.Fatal(err, "failed to list clinics")
	}
	if len(clinics) == 0 {
		for _, c := range sampleClinics() {
			if err := clinicRepo.Create(ctx, c); err != nil {
				log.Fatal(err, "failed to seed clinic")
			}
		}
		log.Info("sample clinics seeded")
	}

	tipRepo := postgres.NewTipRepository(base)
	tips, err := tipRepo.List(ctx)
	if err != nil {
		log.Fatal(err, "failed to list tips")
	}
	if len(tips) == 0 {
		for _, tip := range sampleTips() {
			if err := tipRepo.Create(ctx, tip); err != nil {
				log.Fatal(err, "failed to seed tip")
			}
		}
		log.Info("sample tips seeded")
	}
}

func sampleClinics() []*model.Clinic {
	return []*model.Clinic{
		{Name: "Ridge Hospital", Address: "Castle Road, Accra", Phone: "0302-667812"},
		{Name: "Korle Bu Polyclinic", Address: "Guggisberg Ave, Accra", Phone: "0302-673034"},
		{Name: "Tema General Hospital", Address: "Hospital Road, Tema", Phone: "0303-202771"},
	}
}

func sampleTips() []*model.Tip {
	return []*model.Tip{
		{
			Title:    "Attend all antenatal visits",
			Content:  "Regular check-ups help catch problems early. Aim for at least eight visits during pregnancy.",
			Language: "en",
		},
		{
			Title:    "Eat iron-rich foods",
			Content:  "Kontomire, beans and lean meat help prevent anaemia during pregnancy.",
			Language: "en",
		},
		{
			Title:    "Kɔ ayaresabea nhwehwɛmu nyinaa",
			Content:  "Nhwehwɛmu a wɔyɛ no daa boa ma wohu nsɛmnsɛm ntɛm. Bɔ mmɔden kɔ bɛyɛ mpɛn nwɔtwe wɔ nyinsɛn berɛ mu.",
			Language: "tw",
		},
	}
}
