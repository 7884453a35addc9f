package toolserver

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/keyden-cli/keyden/internal/audit"
	"github.com/keyden-cli/keyden/internal/codegen"
	"github.com/keyden-cli/keyden/internal/envfile"
	kerrors "github.com/keyden-cli/keyden/internal/errors"
	"github.com/keyden-cli/keyden/internal/keystore"
	logger "github.com/keyden-cli/keyden/internal/logging"
	"github.com/keyden-cli/keyden/internal/providers"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// maxLineSize caps one request line; secrets are small.
const maxLineSize = 1 << 20

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Tool describes one remote-callable operation for list_tools.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server exposes keystore operations as remote-callable tools over a
// line-delimited JSON-RPC 2.0 protocol: one request per line on in, one
// response per line on out. It serves until EOF.
type Server struct {
	ks  *keystore.Keystore
	in  io.Reader
	out io.Writer
	log logger.Logger

	mu sync.Mutex // serializes writes to out
}

// New constructs a Server over the given keystore and streams.
func New(ks *keystore.Keystore, in io.Reader, out io.Writer, log logger.Logger) *Server {
	return &Server{ks: ks, in: in, out: out, log: log}
}

// Serve processes requests until in reaches EOF. Malformed lines get a
// JSON-RPC error response rather than terminating the session.
func (s *Server) Serve() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Debugf("unparseable request: %v", err)
			s.reply(response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}})
			continue
		}
		s.reply(s.handle(req))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request stream: %w", err)
	}
	return nil
}

func (s *Server) reply(resp response) {
	resp.JSONRPC = "2.0"
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Errorf("failed to encode response: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		s.log.Errorf("failed to write response: %v", err)
	}
}

func (s *Server) handle(req request) response {
	resp := response{ID: req.ID}
	if req.JSONRPC != "2.0" || req.Method == "" {
		resp.Error = &rpcError{Code: codeInvalidRequest, Message: "invalid request"}
		return resp
	}

	s.log.Debugf("dispatching %s", req.Method)
	result, rpcErr := s.dispatch(req.Method, req.Params)
	if rpcErr != nil {
		resp.Error = rpcErr
		return resp
	}
	resp.Result = result
	return resp
}

func (s *Server) dispatch(method string, params json.RawMessage) (any, *rpcError) {
	switch method {
	case "list_tools":
		return tools, nil
	case "store_secret":
		return s.storeSecret(params)
	case "get_secret":
		return s.getSecret(params)
	case "delete_secret":
		return s.deleteSecret(params)
	case "has_secret":
		return s.hasSecret(params)
	case "list_secret_keys":
		return s.listSecretKeys()
	case "keystore_info":
		return s.keystoreInfo()
	case "sync_env":
		return s.syncEnv(params)
	case "generate_client":
		return s.generateClient(params)
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("unknown method %q", method)}
	}
}

var tools = []Tool{
	{Name: "store_secret", Description: "Encrypt and store a secret under an identifier"},
	{Name: "get_secret", Description: "Decrypt and return a stored secret"},
	{Name: "delete_secret", Description: "Remove a stored secret"},
	{Name: "has_secret", Description: "Check whether a secret record exists"},
	{Name: "list_secret_keys", Description: "List all stored secret identifiers"},
	{Name: "keystore_info", Description: "Report keystore path and key backing"},
	{Name: "sync_env", Description: "Materialize a project's secrets into an env file"},
	{Name: "generate_client", Description: "Render client boilerplate for a provider"},
}

type idParams struct {
	ID string `json:"id"`
}

func (s *Server) storeSecret(params json.RawMessage) (any, *rpcError) {
	var p struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.ID == "" || p.Value == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "store_secret requires id and value"}
	}

	if err := s.ks.StoreSecret(p.ID, p.Value); err != nil {
		return nil, internalError(err)
	}
	audit.Log(audit.Entry{Operation: "store", Source: "toolserver", SecretID: p.ID})
	return map[string]bool{"stored": true}, nil
}

func (s *Server) getSecret(params json.RawMessage) (any, *rpcError) {
	var p idParams
	if err := json.Unmarshal(params, &p); err != nil || p.ID == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "get_secret requires id"}
	}

	value, err := s.ks.GetSecret(p.ID)
	if errors.Is(err, kerrors.ErrSecretNotFound) {
		// Absent is a result, not an error: callers treat it as
		// "needs re-entry".
		return map[string]any{"found": false}, nil
	}
	if err != nil {
		return nil, internalError(err)
	}
	return map[string]any{"found": true, "value": value}, nil
}

func (s *Server) deleteSecret(params json.RawMessage) (any, *rpcError) {
	var p idParams
	if err := json.Unmarshal(params, &p); err != nil || p.ID == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "delete_secret requires id"}
	}

	removed, err := s.ks.DeleteSecret(p.ID)
	if err != nil {
		return nil, internalError(err)
	}
	if removed {
		audit.Log(audit.Entry{Operation: "delete", Source: "toolserver", SecretID: p.ID})
	}
	return map[string]bool{"deleted": removed}, nil
}

func (s *Server) hasSecret(params json.RawMessage) (any, *rpcError) {
	var p idParams
	if err := json.Unmarshal(params, &p); err != nil || p.ID == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "has_secret requires id"}
	}

	found, err := s.ks.HasSecret(p.ID)
	if err != nil {
		return nil, internalError(err)
	}
	return map[string]bool{"exists": found}, nil
}

func (s *Server) listSecretKeys() (any, *rpcError) {
	keys, err := s.ks.ListSecretKeys()
	if err != nil {
		return nil, internalError(err)
	}
	if keys == nil {
		keys = []string{}
	}
	return map[string][]string{"keys": keys}, nil
}

func (s *Server) keystoreInfo() (any, *rpcError) {
	info, err := s.ks.Info()
	if err != nil {
		return nil, internalError(err)
	}
	return map[string]any{
		"path":          info.Path,
		"usingKeychain": info.UsingKeychain,
		"secretCount":   info.SecretCount,
	}, nil
}

func (s *Server) syncEnv(params json.RawMessage) (any, *rpcError) {
	var p struct {
		Project string `json:"project"`
		Dir     string `json:"dir"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Project == "" || p.Dir == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "sync_env requires project and dir"}
	}

	values, err := envfile.ProjectValues(s.ks, p.Project)
	if err != nil {
		return nil, internalError(err)
	}

	envPath := filepath.Join(p.Dir, ".env")
	result, err := envfile.Sync(envPath, values)
	if err != nil {
		return nil, internalError(err)
	}
	if _, err := envfile.EnsureGitignored(p.Dir, ".env"); err != nil {
		s.log.Debugf("could not update .gitignore: %v", err)
	}

	audit.Log(audit.Entry{
		Operation:   "sync",
		Source:      "toolserver",
		ProjectName: p.Project,
		EnvPath:     envPath,
		Count:       len(values),
	})
	return map[string]any{
		"path":    envPath,
		"added":   len(result.Added),
		"updated": len(result.Updated),
	}, nil
}

func (s *Server) generateClient(params json.RawMessage) (any, *rpcError) {
	var p struct {
		Provider string `json:"provider"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Provider == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "generate_client requires provider"}
	}
	if p.Language == "" {
		p.Language = "typescript"
	}

	provider, err := providers.Get(p.Provider)
	if err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
	}
	code, err := codegen.Client(provider, p.Language)
	if err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
	}
	return map[string]string{
		"filename": codegen.Filename(provider, p.Language),
		"code":     code,
	}, nil
}

func internalError(err error) *rpcError {
	return &rpcError{Code: codeInternalError, Message: err.Error()}
}
