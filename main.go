package main

import (
	"fmt"
	"log"
	"net/http"

	"communityBilling/config"
	"communityBilling/controllers"
	"communityBilling/database"
	"communityBilling/middleware"
	"communityBilling/services"
	"communityBilling/utils"
	"github.com/gorilla/mux"
)

// healthHandler возвращает состояние сервиса
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// metricsHandler возвращает снимок метрик приложения
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snapshot := utils.GetMetrics().Snapshot()
	fmt.Fprintf(w, `{"total_requests":%d,"failed_requests":%d,"payments_created":%d,"payments_generated":%d,"payments_paid":%d}`,
		snapshot.TotalRequests, snapshot.FailedRequests,
		snapshot.PaymentsCreated, snapshot.PaymentsGenerated, snapshot.PaymentsPaid)
}

// initBillingScheduler запускает планировщик начислений
func initBillingScheduler(db *database.Database, emailService *services.EmailService) {
	// Создаем сервис платежей
	paymentService := services.NewPaymentService(db.DB, emailService)

	// Создаем планировщик начислений
	scheduler := services.NewBillingSchedulerService(db.DB, paymentService)

	// Запускаем планировщик
	scheduler.Start()
	log.Println("Планировщик начислений запущен")
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Создаем административную учетную запись, если ее еще нет
	userService := services.NewUserService(db)
	if err := userService.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Ошибка создания административной учетной записи: %v", err)
	}

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Запускаем планировщик начислений
	initBillingScheduler(db, emailService)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RateLimitMiddleware)

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(db, cfg)
	feeController := controllers.NewFeeController(db, emailService)
	residentController := controllers.NewResidentController(db)
	paymentController := controllers.NewPaymentController(db, emailService)

	// Публичные маршруты
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")
	router.HandleFunc("/health", healthHandler).Methods("GET")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))
	protected.Use(middleware.LoggingMiddleware)

	feeController.RegisterRoutes(protected)
	residentController.RegisterRoutes(protected)
	paymentController.RegisterRoutes(protected)
	protected.HandleFunc("/metrics", metricsHandler).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	utils.LogInfo("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
