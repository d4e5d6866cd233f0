package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver pq para PostgreSQL, registrado como "postgres" no database/sql
	_ "github.com/lib/pq"
)

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// Retorna a conexão *sql.DB pronta para uso.
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {

	// 1. Abrir a Conexão (sql.Open só valida a DSN, ainda não conecta)
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		// DSN mal formada ou driver não registrado
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Testar a Conexão Imediatamente
	// Garante que as credenciais e o servidor estão corretos. Com prazo de 5s
	// para o main não ficar pendurado num host que não responde.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		// DB inacessível, credenciais erradas ou timeout
		db.Close() // Fecha o pool aberto se o ping falhar
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 3. Configuração do Connection Pool

	// MaxOpenConns: teto de conexões abertas com o banco.
	// Movimentações concorrentes disputam essas conexões; ajuste ao max_connections do servidor.
	db.SetMaxOpenConns(25)

	// MaxIdleConns: conexões ociosas mantidas no pool.
	// Muito baixo faz o Go abrir e fechar conexões a cada rajada de requisições.
	db.SetMaxIdleConns(10)

	// ConnMaxLifetime: recicla conexões antigas (proxies e firewalls derrubam conexões longas).
	db.SetConnMaxLifetime(5 * time.Minute)

	// ConnMaxIdleTime: fecha conexões paradas há mais de 2 minutos.
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}
