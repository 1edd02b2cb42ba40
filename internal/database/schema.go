package database

const postgresSchema = `
CREATE TABLE IF NOT EXISTS team_ratings (
    season     INTEGER          NOT NULL,
    team       TEXT             NOT NULL,
    rating     DOUBLE PRECISION NOT NULL,
    updated_at TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
    PRIMARY KEY (season, team)
);

CREATE TABLE IF NOT EXISTS simulation_runs (
    id                   UUID             PRIMARY KEY,
    season               INTEGER          NOT NULL,
    runs                 INTEGER          NOT NULL,
    random_seed          BIGINT           NOT NULL,
    home_field_advantage DOUBLE PRECISION NOT NULL,
    workers              INTEGER          NOT NULL,
    champion             TEXT             NOT NULL DEFAULT '',
    created_at           TIMESTAMPTZ      NOT NULL,
    odds                 JSONB            NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulation_runs_created ON simulation_runs(created_at DESC);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS team_ratings (
    season     INTEGER  NOT NULL,
    team       TEXT     NOT NULL,
    rating     REAL     NOT NULL,
    updated_at DATETIME NOT NULL,
    PRIMARY KEY (season, team)
);

CREATE TABLE IF NOT EXISTS simulation_runs (
    id                   TEXT     PRIMARY KEY,
    season               INTEGER  NOT NULL,
    runs                 INTEGER  NOT NULL,
    random_seed          INTEGER  NOT NULL,
    home_field_advantage REAL     NOT NULL,
    workers              INTEGER  NOT NULL,
    champion             TEXT     NOT NULL DEFAULT '',
    created_at           DATETIME NOT NULL,
    odds                 TEXT     NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulation_runs_created ON simulation_runs(created_at DESC);
`
