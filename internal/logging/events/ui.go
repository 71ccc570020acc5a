package events

import "github.com/atomicstack/ghflow/internal/logging"

type UITracer struct{}

type FetchTracer struct{}

type InputTracer struct{}

type StatusTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Fetch   = FetchTracer{}
	Input   = InputTracer{}
	Status  = StatusTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Transition(key, from, to, intent string) {
	logging.Trace("ui.transition", map[string]interface{}{
		"key":    key,
		"from":   from,
		"to":     to,
		"intent": intent,
	})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (FetchTracer) Spawn(id, kind, target string, generation uint64) {
	logging.Trace("fetch.spawn", map[string]interface{}{
		"id":         id,
		"kind":       kind,
		"target":     target,
		"generation": generation,
	})
}

func (FetchTracer) Dedup(kind, target string) {
	logging.Trace("fetch.dedup", map[string]interface{}{"kind": kind, "target": target})
}

func (FetchTracer) Apply(id, kind, target string, generation uint64) {
	logging.Trace("fetch.apply", map[string]interface{}{
		"id":         id,
		"kind":       kind,
		"target":     target,
		"generation": generation,
	})
}

func (FetchTracer) Stale(id, kind, target string, generation, current uint64) {
	logging.Trace("fetch.stale", map[string]interface{}{
		"id":         id,
		"kind":       kind,
		"target":     target,
		"generation": generation,
		"current":    current,
	})
}

func (FetchTracer) Offscreen(id, kind, target string) {
	logging.Trace("fetch.offscreen", map[string]interface{}{"id": id, "kind": kind, "target": target})
}

func (FetchTracer) Error(id, kind, target string, err error) {
	if err == nil {
		return
	}
	logging.Trace("fetch.error", map[string]interface{}{
		"id":     id,
		"kind":   kind,
		"target": target,
		"error":  err.Error(),
	})
}

func (InputTracer) Begin(mode string) {
	logging.Trace("input.begin", map[string]interface{}{"mode": mode})
}

func (InputTracer) Edit(mode, buffer string) {
	logging.Trace("input.edit", map[string]interface{}{"mode": mode, "buffer": buffer})
}

func (InputTracer) Submit(mode string, length int) {
	logging.Trace("input.submit", map[string]interface{}{"mode": mode, "length": length})
}

func (InputTracer) Cancel(mode string) {
	logging.Trace("input.cancel", map[string]interface{}{"mode": mode})
}

func (InputTracer) Invalid(mode, reason string) {
	logging.Trace("input.invalid", map[string]interface{}{"mode": mode, "reason": reason})
}

func (StatusTracer) Notify(level, text string, expiry uint64) {
	logging.Trace("status.notify", map[string]interface{}{"level": level, "text": text, "expiry": expiry})
}

func (StatusTracer) Prompt(text string) {
	logging.Trace("status.prompt", map[string]interface{}{"text": text})
}

func (StatusTracer) Expire(text string, tick uint64) {
	logging.Trace("status.expire", map[string]interface{}{"text": text, "tick": tick})
}

func (ActionTracer) Start(kind, target string) {
	logging.Trace("action.start", map[string]interface{}{"kind": kind, "target": target})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
