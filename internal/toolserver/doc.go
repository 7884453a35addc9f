// Package toolserver serves keystore operations to local developer tools
// over line-delimited JSON-RPC 2.0 on stdio.
package toolserver
