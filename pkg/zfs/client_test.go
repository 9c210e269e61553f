// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zfs

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/zfs-killsnaps/pkg/command"
	"github.com/NVIDIA/zfs-killsnaps/pkg/errors"
)

// fakeRunner replies to commands by their joined argument vector.
type fakeRunner struct {
	replies map[string]fakeReply
	calls   [][]string
}

type fakeReply struct {
	stdout string
	stderr string
	status int
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*command.Result, error) {
	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)

	reply, ok := f.replies[strings.Join(argv, " ")]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %v", argv)
	}

	res := &command.Result{Stdout: []byte(reply.stdout), Stderr: []byte(reply.stderr), ExitStatus: reply.status}
	if reply.status != 0 {
		return res, errors.WrapWithContext(errors.ErrCodeCommandFailed, "command exited with non-zero status",
			fmt.Errorf("exit status %d", reply.status),
			map[string]any{"stderr": reply.stderr, "exit_status": reply.status})
	}
	return res, nil
}

func TestClientList(t *testing.T) {
	runner := &fakeRunner{replies: map[string]fakeReply{
		"zfs list -H -t snapshot": {stdout: "tank@weekly-2\t0B\n" + "tank@weekly-1\t0B\n"},
	}}

	ids, err := NewClient(runner).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tank@weekly-2", "tank@weekly-1"}, ids)
}

func TestClientListFailure(t *testing.T) {
	runner := &fakeRunner{replies: map[string]fakeReply{
		"/sbin/zfs list -H -t snapshot": {stderr: "permission denied", status: 1},
	}}

	ids, err := NewClient(runner, WithCommand("/sbin/zfs")).List(context.Background())
	require.Error(t, err)
	assert.Nil(t, ids)
	assert.Equal(t, errors.ErrCodeListFailed, errors.CodeOf(err))
	assert.Equal(t, "permission denied", command.Stderr(err))
}

func TestClientCreation(t *testing.T) {
	runner := &fakeRunner{replies: map[string]fakeReply{
		"zfs get -H -o value creation tank@weekly-1": {stdout: "Tue Jan 14 03:00 2025\n"},
		"zfs get -H -o value creation tank@gone":     {stderr: "dataset does not exist", status: 1},
		"zfs get -H -o value creation tank@blank":    {stdout: "\n"},
	}}
	client := NewClient(runner)

	value, err := client.Creation(context.Background(), "tank@weekly-1")
	require.NoError(t, err)
	assert.Equal(t, "Tue Jan 14 03:00 2025", value)

	_, err = client.Creation(context.Background(), "tank@gone")
	require.Error(t, err)
	assert.Equal(t, "dataset does not exist", command.Stderr(err))

	_, err = client.Creation(context.Background(), "tank@blank")
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestClientDestroyArgs(t *testing.T) {
	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{"plain", false, []string{"zfs", "destroy", "tank/home@weekly-1"}},
		{"recursive", true, []string{"zfs", "destroy", "-r", "tank/home@weekly-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{replies: map[string]fakeReply{
				strings.Join(tt.want, " "): {},
			}}

			require.NoError(t, NewClient(runner).Destroy(context.Background(), "tank/home@weekly-1", tt.recursive))
			assert.Equal(t, [][]string{tt.want}, runner.calls)
		})
	}
}

func TestClientDestroyFailure(t *testing.T) {
	runner := &fakeRunner{replies: map[string]fakeReply{
		"zfs destroy tank@weekly-1": {stderr: "snapshot has dependent clones", status: 1},
	}}

	err := NewClient(runner).Destroy(context.Background(), "tank@weekly-1", false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.CodeOf(err))
	assert.Equal(t, "snapshot has dependent clones", command.Stderr(err))
}

func TestClientRejectsNonSnapshots(t *testing.T) {
	ids := []string{"tank", "tank/home", "-r", "-rf@x", "@x", "tank@"}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			runner := &fakeRunner{}
			client := NewClient(runner)

			err := client.Destroy(context.Background(), id, true)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

			_, err = client.Creation(context.Background(), id)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

			assert.Empty(t, runner.calls, "no command may be issued for %q", id)
		})
	}
}
