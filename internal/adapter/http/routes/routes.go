package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "payment_adapter/docs" // This will be auto-generated
	"payment_adapter/internal/adapter/http/handlers"
	repository2 "payment_adapter/internal/adapter/persistence/repository"
	"payment_adapter/internal/domain/entities"
	"payment_adapter/internal/infrastructure/database"
	"payment_adapter/internal/infrastructure/payments"
	"payment_adapter/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	gatewayClient, err := payments.NewGatewayClient(os.Getenv("GATEWAY_API_URL"))
	if err != nil {
		log.Fatalf("Payment gateway not configured: %v", err)
	}
	requestFactory := payments.NewDefaultRequestFactory(os.Getenv("GATEWAY_MERCHANT_ID"))

	executor := usecase.NewIdempotentTransactionExecutor(paymentRepo, gatewayClient, requestFactory)

	// One executor table per payment method; the executor itself is the
	// explicit default entry for unmapped transaction types.
	cardDispatcher := usecase.NewPaymentMethodDispatcher(map[entities.TransactionType]usecase.ITransactionExecutor{
		entities.TransactionTypeAuthorization: executor,
		entities.TransactionTypeCharge:        executor,
		entities.TransactionTypeRefund:        executor,
	}, executor)
	walletDispatcher := usecase.NewPaymentMethodDispatcher(map[entities.TransactionType]usecase.ITransactionExecutor{
		entities.TransactionTypeAuthorization: executor,
		entities.TransactionTypeCharge:        executor,
	}, executor)

	dispatcher := usecase.NewPaymentDispatcher(getenvDefault("GATEWAY_INTERFACE", "PAYGATE"), map[string]*usecase.PaymentMethodDispatcher{
		"CREDIT_CARD": cardDispatcher,
		"WALLET":      walletDispatcher,
	})

	maxAttempts := atoiDefault(getenvDefault("DISPATCH_MAX_ATTEMPTS", "3"), 3)
	retryDelay := time.Duration(atoiDefault(getenvDefault("DISPATCH_RETRY_DELAY_MS", "150"), 150)) * time.Millisecond

	processingUseCase := usecase.NewPaymentProcessingUseCase(paymentRepo, dispatcher, maxAttempts, retryDelay)
	notificationUseCase := usecase.NewNotificationDispatcher(paymentRepo)

	paymentHandler := handlers.NewPaymentHandler(processingUseCase)
	notificationHandler := handlers.NewNotificationHandler(notificationUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, notificationHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(v string, def int) int {
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 1 {
		return def
	}
	return parsed
}
