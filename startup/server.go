package startup

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"gym_service/domain"
	"gym_service/handlers"
	application "gym_service/service"
	"gym_service/startup/config"
	"gym_service/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

const probeTimeout = 5 * time.Second

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func initLogger(logFilePath string) {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	if logFilePath == "" {
		return
	}
	writer, err := rotatelogs.New(
		logFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		Logger.Warn("could not open rotating log file, logging to stdout: ", err)
		return
	}
	Logger.SetOutput(writer)
}

func (server *Server) Start() {
	initLogger(server.config.LogFilePath)

	tp := initTracerProvider(server.config.JaegerAddress)
	defer func() {
		if tp != nil {
			_ = tp.Shutdown(context.Background())
		}
	}()
	tracer := otel.Tracer("gym_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	gymStore, userStore, mongoClient := server.initStores(tracer)
	if mongoClient != nil {
		defer func(mongoClient *mongo.Client, ctx context.Context) {
			err := mongoClient.Disconnect(ctx)
			if err != nil {
				Logger.Warn("mongo disconnect: ", err)
			}
		}(mongoClient, context.Background())
	}

	gymService := application.NewGymService(gymStore, userStore, tracer, Logger)
	userService := application.NewUserService(userStore, gymStore, tracer, Logger)

	gymHandler := handlers.NewGymHandler(gymService, tracer, Logger)
	userHandler := handlers.NewUserHandler(userService, tracer, Logger)

	server.start(gymHandler, userHandler)
}

// initStores performs the one-shot backend probe. A reachable database
// selects the MongoDB stores; anything else selects the seeded in-memory
// stores for the rest of the process lifetime. There is no failover back.
func (server *Server) initStores(tracer trace.Tracer) (domain.GymStore, domain.UserStore, *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	client, err := store.GetClient(ctx, server.config.GymDBHost, server.config.GymDBPort)
	if err == nil {
		err = store.Probe(ctx, client)
	}
	if err != nil {
		Logger.Warn("database unreachable, running with in-memory store: ", err)
		gyms := store.NewGymInMemoryStore(store.SeedGyms(), store.SeedNextGymID, tracer)
		users := store.NewUserInMemoryStore(store.SeedUsers(), store.SeedNextUserID, tracer)
		return gyms, users, nil
	}

	Logger.Info("connected to database")
	return store.NewGymMongoDBStore(client, tracer), store.NewUserMongoDBStore(client, tracer), client
}

func (server *Server) start(gymHandler *handlers.GymHandler, userHandler *handlers.UserHandler) {
	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(requestLogMiddleware)
	gymHandler.Init(router)
	userHandler.Init(router)
	router.NotFoundHandler = http.HandlerFunc(notFoundRoute)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", server.config.Port),
		Handler:      router,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	wait := time.Second * 15
	go func() {
		Logger.Info("server listening on port ", server.config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Logger.Fatal(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		Logger.Fatalf("error shutting down server: %s", err)
	}
	Logger.Info("server gracefully stopped")
}

func initTracerProvider(jaegerAddress string) *sdktrace.TracerProvider {
	if jaegerAddress == "" {
		return nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerAddress)))
	if err != nil {
		Logger.Warn("failed to initialize jaeger exporter: ", err)
		return nil
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("gym_service"),
		),
	)
	if err != nil {
		Logger.Warn("failed to build tracer resource: ", err)
		return nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	return tp
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		Logger.WithFields(logrus.Fields{
			"requestId": uuid.NewString(),
			"method":    h.Method,
			"path":      h.URL.Path,
		}).Info("request received")

		next.ServeHTTP(rw, h)
	})
}

func notFoundRoute(rw http.ResponseWriter, h *http.Request) {
	rw.Header().Add("Content-Type", "application/json")
	rw.WriteHeader(http.StatusNotFound)
	_, _ = rw.Write([]byte(fmt.Sprintf(
		`{"success":false,"error":"route not found","message":"the route %s %s does not exist"}`,
		h.Method, h.URL.Path)))
}
