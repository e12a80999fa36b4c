// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Cluster Protocol
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the Lua configuration file
package configuration

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/clusterprotocol/datasetd/identity"
	"github.com/clusterprotocol/datasetd/rpc/listeners"
	"github.com/clusterprotocol/datasetd/token"
)

// basic defaults, directories and files are relative to the data_directory
const (
	defaultPidFile         = "datasetd.pid"
	defaultKeyFile         = "datasetd.key"
	defaultCertificateFile = "datasetd.crt"

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "dataset"

	defaultLogDirectory = "log"
	defaultLogFile      = "datasetd.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when the log exceeds this size

	defaultRPCClients = 10
)

var defaultLogLevels = map[string]string{
	"main":            "info",
	"config":          "info",
	logger.DefaultTag: "error",
}

// DatabaseType - the storage location
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// TokensType - genesis settings for the built-in token ledgers
//
// supplies are decimal minor-unit strings since 18 decimal values
// exceed the Lua number range
type TokensType struct {
	StableSupply   string `gluamapper:"stable_supply" json:"stable_supply"`
	ProtocolSupply string `gluamapper:"protocol_supply" json:"protocol_supply"`
	Treasury       string `gluamapper:"treasury" json:"treasury"`
}

// Configuration - the full configuration file contents
type Configuration struct {
	DataDirectory string                     `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string                     `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType               `gluamapper:"database" json:"database"`
	ClientRPC     listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Tokens        TokensType                 `gluamapper:"tokens" json:"tokens"`
	Logging       logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: ".",
		PidFile:       defaultPidFile,

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PidFile,
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// fail if these are not simple file names i.e. must not contain a
	// path separator, then prefix with the corresponding directory
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = ensureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("files: %q is not a plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{&options.Database.Directory, &options.Logging.Directory} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// Genesis - convert the token settings for the ledger
func (t *TokensType) Genesis() (token.Genesis, error) {
	genesis := token.Genesis{}

	stable, err := parseSupply(t.StableSupply)
	if nil != err {
		return genesis, err
	}
	protocol, err := parseSupply(t.ProtocolSupply)
	if nil != err {
		return genesis, err
	}

	var treasury identity.Identity
	if "" != t.Treasury {
		treasury, err = identity.FromString(t.Treasury)
		if nil != err {
			return genesis, err
		}
	}

	genesis.StableSupply = stable
	genesis.ProtocolSupply = protocol
	genesis.Treasury = treasury
	return genesis, nil
}

func parseSupply(s string) (*big.Int, error) {
	if "" == s {
		return big.NewInt(0), nil
	}
	supply, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("supply: %q is not a decimal integer", s)
	}
	return supply, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
