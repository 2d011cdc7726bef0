package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"themison-be/budget"
	"themison-be/chat"
	"themison-be/config"
	"themison-be/cron"
	"themison-be/document"
	"themison-be/migrate"
	"themison-be/notification"
	"themison-be/organization"
	"themison-be/patient"
	"themison-be/role"
	"themison-be/seeder"
	"themison-be/sso"
	"themison-be/storage"
	"themison-be/trial"
	"themison-be/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables.")
	}

	args := os.Args
	db := config.InitDB()
	defer db.Close()

	if len(args) > 1 && args[1] == "--migrate" {
		migrate.RunMigrations(db)
		return
	}

	if len(args) > 1 && args[1] == "--seed" {
		seeder.RunSeeder(db)
		return
	}

	redisClient := config.InitRedis()
	defer redisClient.Close()

	store, err := storage.InitMinio()
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("ALLOWED_ORIGINS")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	user.RegisterRoutes(r, db, redisClient)
	sso.RegisterRoutes(r, db, redisClient)
	organization.RegisterRoutes(r, db)
	role.RegisterRoutes(r, db)
	trial.RegisterRoutes(r, db)
	notifier, hub := notification.RegisterRoutes(r, db)
	document.RegisterRoutes(r, db, redisClient, store, notifier)
	patientRepo := patient.RegisterRoutes(r, db)
	budget.RegisterRoutes(r, db, redisClient)
	chat.RegisterRoutes(r, db)

	scheduler := cron.NewScheduler()
	reminders := cron.NewVisitReminderScheduler(patientRepo, trial.NewTrialRepository(db), notifier)
	if err := reminders.RegisterJobs(scheduler); err != nil {
		log.Fatalf("Failed to register scheduler jobs: %v", err)
	}
	scheduler.Start()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server running at http://0.0.0.0:%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited successfully")
}
