package comments

import "github.com/pribylovaa/go-forum-client/internal/models"

// Чистые трансформации леса комментариев.
//
// Все функции обращаются с лесом как с иммутабельной структурой: общие
// узлы не мутируются, изменённые ветки пересобираются, нетронутые
// поддеревья разделяются между старой и новой версией. UI сравнивает
// версии по ссылкам, поэтому мутация на месте недопустима.

// foldLevel — уровень вложенности (корень — уровень 1), глубже которого
// новые ответы прикрепляются к предку этого уровня, а не к самой цели.
// Визуальная вложенность тем самым не превышает foldLevel+1.
const foldLevel = 2

// pathTo возвращает путь от корня до узла с данным id включительно.
func pathTo(forest []models.Comment, id string) ([]models.Comment, bool) {
	for _, n := range forest {
		if n.ID == id {
			return []models.Comment{n}, true
		}

		if sub, ok := pathTo(n.Replies, id); ok {
			return append([]models.Comment{n}, sub...), true
		}
	}

	return nil, false
}

// Find возвращает узел леса по id.
func Find(forest []models.Comment, id string) (models.Comment, bool) {
	path, ok := pathTo(forest, id)
	if !ok {
		return models.Comment{}, false
	}

	return path[len(path)-1], true
}

// AttachmentAncestor возвращает id узла, к которому реально прикрепится
// ответ на targetID с учётом сворачивания глубины:
//   - цель на уровне <= foldLevel — сама цель;
//   - цель глубже — её предок уровня foldLevel.
//
// false — цели в лесу нет (например, её только что удалили).
func AttachmentAncestor(forest []models.Comment, targetID string) (string, bool) {
	path, ok := pathTo(forest, targetID)
	if !ok {
		return "", false
	}

	if len(path) <= foldLevel {
		return targetID, true
	}

	return path[foldLevel-1].ID, true
}

// InsertReply прикрепляет reply последним дочерним узлом к parentID.
// Родитель ищется по всему лесу (DFS). Если родителя нет, лес
// возвращается без изменений и ok=false: родителя могли конкурентно
// удалить, для вызывающего это не ошибка.
func InsertReply(forest []models.Comment, parentID string, reply models.Comment) ([]models.Comment, bool) {
	for i := range forest {
		if forest[i].ID == parentID {
			out := append([]models.Comment(nil), forest...)
			node := out[i]
			node.Replies = append(append([]models.Comment(nil), node.Replies...), reply)
			out[i] = node

			return out, true
		}

		if sub, ok := InsertReply(forest[i].Replies, parentID, reply); ok {
			out := append([]models.Comment(nil), forest...)
			node := out[i]
			node.Replies = sub
			out[i] = node

			return out, true
		}
	}

	return forest, false
}

// RemoveSubtree удаляет узел с данным id вместе со всем его поддеревом.
// Лес пересобирается фильтрацией на каждом уровне с рекурсией в
// оставшиеся ветки; удаление отсутствующего id — no-op, операция
// идемпотентна.
func RemoveSubtree(forest []models.Comment, id string) []models.Comment {
	if forest == nil {
		return nil
	}

	out := make([]models.Comment, 0, len(forest))
	for _, n := range forest {
		if n.ID == id {
			continue
		}

		n.Replies = RemoveSubtree(n.Replies, id)
		out = append(out, n)
	}

	return out
}

// CanDelete — клиентская политика удаления комментария:
//   - автор удаляет свой комментарий (moderated=false);
//   - модератор/администратор удаляет чужой через модерационный путь
//     (moderated=true);
//   - прочим — нельзя.
//
// Проверка выполняется до обращения к серверу, чтобы не жечь round-trip;
// финальный авторитет по правам — всегда сервер.
func CanDelete(actor *models.User, authorID string) (allowed, moderated bool) {
	if actor == nil {
		return false, false
	}

	if authorID != "" && actor.ID == authorID {
		return true, false
	}

	if actor.Role.CanModerate() {
		return true, true
	}

	return false, false
}
