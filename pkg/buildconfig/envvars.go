// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildconfig

const envVarPrefix = "VTTFORGE_"

const (
	// LogLevelEnvVar
	// VTTFORGE_LOG_LEVEL sets the log level for the bundler.
	// 	Default: info
	//  Possible values: info error warn debug
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"

	// PackageTypeEnvVar
	// VTTFORGE_PACKAGE_TYPE overrides the package type ('module' or 'system')
	PackageTypeEnvVar = envVarPrefix + "PACKAGE_TYPE"

	// PackageNameEnvVar
	// VTTFORGE_PACKAGE_NAME overrides the package name used for the runtime
	// deploy prefix. Defaults to the manifest's id field.
	PackageNameEnvVar = envVarPrefix + "PACKAGE_NAME"

	// OutDirEnvVar
	// VTTFORGE_OUT_DIR overrides the bundler output directory
	OutDirEnvVar = envVarPrefix + "OUT_DIR"

	// DataPathEnvVar
	// VTTFORGE_DATA_PATH is the absolute path to the host application's user
	// data directory. Used only by the best-effort external import checker.
	DataPathEnvVar = envVarPrefix + "DATA_PATH"

	// RewriteAbsoluteImportsEnvVar
	// VTTFORGE_REWRITE_ABSOLUTE_IMPORTS enables rewriting of absolute
	// (route-rooted) imports into runtime loads
	RewriteAbsoluteImportsEnvVar = envVarPrefix + "REWRITE_ABSOLUTE_IMPORTS"

	// CheckExternalImportsEnvVar
	// VTTFORGE_CHECK_EXTERNAL_IMPORTS enables best-effort existence checking
	// of host-external imports against the host data directory
	CheckExternalImportsEnvVar = envVarPrefix + "CHECK_EXTERNAL_IMPORTS"
)
