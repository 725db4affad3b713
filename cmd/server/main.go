package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/api"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/boardstore"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/config"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/notify"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/syncer"
)

func main() {
	conf := config.Load()

	if conf.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, rdb := createConns(conf)

	store, err := boardstore.New(&boardstore.Config{
		ReadConn:  db,
		WriteConn: db,
		Redis:     rdb,
		Debugger:  conf.Debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	source := sheet.NewWorkbookSource(conf.WorkbookDir)

	engine := syncer.NewEngine(&syncer.Config{
		Store:          store,
		Source:         source,
		Notifier:       notify.NewLogNotifier(),
		IntakeGroup:    conf.IntakeGroup,
		QualifiedGroup: conf.QualifiedGroup,
		RowCap:         conf.RowCap,
	})

	router := mux.NewRouter()
	api.NewServer(engine, source, store, conf.RowCap).Routes(router)

	srv := &http.Server{
		Handler: router,
		Addr:    conf.HTTPAddr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	logrus.WithField("addr", conf.HTTPAddr).Info("listening")
	log.Fatal(srv.ListenAndServe())
}

func createConns(conf *config.Config) (*sqlx.DB, *redis.Client) {
	db, err := sqlx.Connect("postgres", conf.PostgresDSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr(),
		Password: conf.RedisPass,
		DB:       0, // use default DB
	})
	if rdb == nil {
		log.Fatal("unable to connect to redis")
	}

	return db, rdb
}
