package main

import (
	"time"

	"app/internal/audit"
	"app/internal/config"
	"app/internal/domain/event"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	appmw "app/internal/middleware"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(subject string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&infraRepo.ProductRecord{},
		&infraRepo.WarehouseRecord{},
		&infraRepo.WarehouseLotRecord{},
		&infraRepo.EventRecord{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	warehouseRepo := infraRepo.NewWarehouseGormRepository(gormDB)
	auditLog := infraRepo.NewAuditLogGormRepository(gormDB)

	//サーバー（ロガーはrecorderと共用）
	e := server.New()

	//イベントチャネルと監査ログの購読
	events := event.NewChannel()
	recorder := audit.NewRecorder(auditLog, e.Logger)
	recorder.Register(events)

	//usecaseに渡す部品
	clock := &realClock{}
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, warehouseRepo)
	warehouseUC := usecase.NewWarehouseUsecase(warehouseRepo, productRepo, events, clock)
	eventUC := usecase.NewEventUsecase(auditLog)
	loginUC := usecase.NewLoginUsecase(cfg.AdminPasswordHash, verifier, issuer, clock)

	//Handler生成・ルート登録
	auth := appmw.AuthJWT(cfg)
	handler.NewAuthHandler(loginUC).RegisterRoutes(e)
	handler.NewProductHandler(productUC).RegisterRoutes(e, auth)
	handler.NewWarehouseHandler(warehouseUC).RegisterRoutes(e, auth)
	handler.NewEventHandler(eventUC).RegisterRoutes(e)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
