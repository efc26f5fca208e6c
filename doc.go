// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Oprename follows renamed API operations into Go code.
//
// Usage:
//
//	oprename diff -b before.json -a after.json -o renames.json
//	oprename fix -r renames.json -d dir -s sdk-import-path [--diff]
//
// An SDK generated from an OpenAPI contract names a client method
// and a parameters type after every operation id. When a new version
// of the contract renames operations, code calling the SDK stops
// compiling until every reference is updated by hand. Oprename does
// that update in two steps.
//
// Diff loads two versions of the contract (JSON or YAML) and writes a
// report listing each operation, matched by path and HTTP verb, whose
// id changed. The x-xgen-operation-id-override extension, when set,
// takes precedence over operationId. Operations without tags are
// ignored, as are operations added or removed between the versions.
// The report looks like:
//
//	{
//	  "entries": [
//	    {
//	      "tag": "Projects",
//	      "operation_id_before": "getProject",
//	      "operation_id_after": "getGroup"
//	    }
//	  ]
//	}
//
// Fix reads a report and rewrites every Go file under dir. It renames
//
//	s.clientv2.ProjectsApi.GetProject(...)           -> GetGroup
//	s.clientv2.ProjectsApi.GetProjectWithParams(...) -> GetGroupWithParams
//	admin.GetProjectApiParams                        -> admin.GetGroupApiParams
//
// where admin is whatever name the file imports the package at the
// -s import path under. A method renamed under one tag is not touched
// when it is called through another API group (say, TeamsApi); such
// calls are logged and skipped. Comments, strings, and all other text
// are left exactly as they were.
//
// The --diff flag causes fix to print a diff of the intended changes
// instead of writing them. The -c flag names a YAML file overriding the
// names fix looks for:
//
//	sdk: go.mongodb.org/atlas-sdk/v20231115002/admin
//	receiver: s
//	clientField: clientv2
//	callSuffix: WithParams
//	paramsSuffix: ApiParams
//	ownerSuffix: Api
//	defaultAlias: admin
//	extension: .go
//	exclude: [vendor/**]
//	concurrency: 16
//
// A file that cannot be read or parsed is reported and left alone;
// the other files are still fixed.
package main
