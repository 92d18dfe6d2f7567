package server

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

const DefaultPort = 2000

type ServerConfig struct {
	Port     uint16          // 本服务器监听端口
	Pipeline pipeline.Config // 分析的配置
	Database DatabaseConfig  // 保存结果的数据库。Host为空时读取环境变量，仍为空则不保存
}

func (s ServerConfig) String() string {
	c := s
	c.Database.Password = ""
	marshal, _ := json.Marshal(c)
	return string(marshal)
}

func (config *ServerConfig) Complete() error {
	if config.Port < 1024 {
		return fmt.Errorf("端口号应该在1024到65535之间，现在为%d", config.Port)
	}

	if err := config.Pipeline.Complete(); err != nil {
		return err
	}

	if config.Database.Host == "" {
		host, port := os.Getenv("MYSQL_SERVICE_HOST"), os.Getenv("MYSQL_SERVICE_PORT")
		if host != "" && port != "" {
			config.Database.Host = fmt.Sprintf("%s:%s", host, port)
		}
	}

	return nil
}

type Server interface {
	Start() error
}

func NewServer(config *ServerConfig, fs afero.Fs, logger *zap.SugaredLogger) (Server, error) {
	if err := config.Complete(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	driver, err := pipeline.NewDriver(&config.Pipeline, fs, logger.Named("pipeline"))
	if err != nil {
		return nil, err
	}

	var dao Dao
	if config.Database.Host != "" {
		dao, err = NewDao(&config.Database, logger.Named("dao"))
		if err != nil {
			return nil, err
		}
	}

	return &serverImpl{
		config: config,
		driver: driver,
		dao:    dao,
		logger: logger.Named("server"),
	}, nil
}

type serverImpl struct {
	config *ServerConfig
	driver *pipeline.Driver
	dao    Dao // 为nil时不保存结果
	logger *zap.SugaredLogger

	rescanLock sync.Mutex
	resultLock sync.RWMutex
	result     *pipeline.Result
}

func (s *serverImpl) Start() error {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.logger.Infof("服务器启动。配置：%v", s.config)

	if _, err := s.Rescan(rootCtx); err != nil {
		return errors.Wrap(err, "初次分析失败")
	}

	server := s.buildServer()
	errCh := make(chan error, 1)
	go s.serve(server, errCh)

	termSigChan := make(chan os.Signal, 1)
	signal.Notify(termSigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-termSigChan:
		cancel()
		err := server.Shutdown(context.Background())
		if err != nil {
			return errors.Wrap(err, "关闭HTTP服务器失败")
		}
	case err := <-errCh:
		return errors.Wrap(err, "HTTP服务器异常退出")
	}

	// 等待HTTP服务器结束
	err := <-errCh
	if err != nil {
		return errors.Wrap(err, "HTTP关闭出现错误")
	}

	return nil
}

func (s *serverImpl) serve(server *http.Server, errCh chan<- error) {
	s.logger.Infof("API服务器启动，监听%s", server.Addr)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		errCh <- err
		return
	}

	s.logger.Infof("API服务器结束")
	errCh <- nil
}
