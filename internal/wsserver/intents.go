package wsserver

import (
	"github.com/park285/Cheese-Blokus/internal/adapter/blokuspresenter"
	"github.com/park285/Cheese-Blokus/internal/blokus"
	"github.com/park285/Cheese-Blokus/internal/pvpblokus"
	"github.com/park285/Cheese-Blokus/pkg/blokusdto"
)

// dispatch runs one client intent. Failures go back to c only.
func (s *Server) dispatch(c *client, f blokusdto.Frame) {
	var err error
	var data map[string]any
	switch f.T {
	case blokusdto.TypeCreateRoom:
		data, err = s.createRoom(c, f)
	case blokusdto.TypeJoinRoom:
		data, err = s.joinRoom(c, f)
	case blokusdto.TypePlaceMove:
		data, err = s.placeMove(c, f)
	case blokusdto.TypeHint:
		data, err = s.hint(c, f)
	case blokusdto.TypePing:
		if pong, perr := blokusdto.NewFrame(blokusdto.TypePong, f.ID, nil); perr == nil {
			s.reply(c, pong)
		}
	default:
		err = blokuspresenter.ErrBadRequest
	}
	if err != nil {
		s.reply(c, s.presenter.Error(f.ID, err, data))
	}
}

func (s *Server) createRoom(c *client, f blokusdto.Frame) (map[string]any, error) {
	var in blokusdto.CreateRoom
	if err := f.Decode(&in); err != nil {
		return nil, blokuspresenter.ErrBadRequest
	}
	sess, _, err := s.dir.Create(in.Name, c.id)
	if err != nil {
		return map[string]any{"Name": in.Name}, err
	}
	c.join(sess.ID())
	return nil, nil
}

func (s *Server) joinRoom(c *client, f blokusdto.Frame) (map[string]any, error) {
	var in blokusdto.JoinRoom
	if err := f.Decode(&in); err != nil {
		return nil, blokuspresenter.ErrBadRequest
	}
	data := map[string]any{"RoomID": in.RoomID, "Name": in.Name}
	sess, _, err := s.dir.Join(in.RoomID, in.Name, in.Token, c.id)
	if err != nil {
		return data, err
	}
	c.join(sess.ID())
	return nil, nil
}

func (s *Server) placeMove(c *client, f blokusdto.Frame) (map[string]any, error) {
	var in blokusdto.PlaceMove
	if err := f.Decode(&in); err != nil {
		return nil, blokuspresenter.ErrBadRequest
	}
	data := map[string]any{"RoomID": in.RoomID}
	sess, err := s.session(c, in.RoomID)
	if err != nil {
		return data, err
	}
	return data, sess.Place(c.id, pvpblokus.PlaceRequest{
		Piece:      in.PieceIndex,
		Rotation:   blokus.Rotation(in.Rotation),
		Reflection: blokus.Reflection(in.Reflection),
		Row:        in.Row,
		Col:        in.Col,
	})
}

func (s *Server) hint(c *client, f blokusdto.Frame) (map[string]any, error) {
	var in blokusdto.HintRequest
	if err := f.Decode(&in); err != nil {
		return nil, blokuspresenter.ErrBadRequest
	}
	data := map[string]any{"RoomID": in.RoomID}
	sess, err := s.session(c, in.RoomID)
	if err != nil {
		return data, err
	}
	m, found, err := sess.Hint(c.id)
	if err != nil {
		return data, err
	}
	out, err := s.presenter.Hint(f.ID, m, found)
	if err != nil {
		return data, err
	}
	s.reply(c, out)
	return nil, nil
}

// session resolves a room for an intent. A room c already joined that has vanished is
// reported as ErrSessionNotFound rather than ErrRoomNotFound.
func (s *Server) session(c *client, roomID string) (*pvpblokus.Session, error) {
	sess, err := s.dir.Get(roomID)
	if err != nil && c.inRoom(roomID) {
		return nil, pvpblokus.ErrSessionNotFound
	}
	return sess, err
}
