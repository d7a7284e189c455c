package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type dumpCtx struct {
	prefix    string
	output    InstrumentOutput
	idcounter *uint64
}

// DumpMessages writes every request the client makes, along with its
// response or error, to output. Credentials are redacted. `prefix` names the
// client in the message ids, `output` can be nil in which case this is a no-op.
func DumpMessages(client *resty.Client, prefix string, output InstrumentOutput) {
	if output == nil {
		return
	}
	var idcounter uint64
	d := dumpCtx{prefix: prefix, output: output, idcounter: &idcounter}
	client.OnAfterResponse(d.onAfterResponse)
	client.OnError(d.onError)
}

func (d dumpCtx) nextId() string {
	return fmt.Sprintf("%s-%04d.txt", d.prefix, atomic.AddUint64(d.idcounter, 1))
}

func (d dumpCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	d.output.Write(d.nextId(), formatHttpMessage(res))
	return nil
}

func (d dumpCtx) onError(req *resty.Request, err error) {
	d.output.Write(d.nextId(), formatFailedRequest(req, err))
}
