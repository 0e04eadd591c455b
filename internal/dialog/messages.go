package dialog

// User-facing texts of the reservation flow.

// MsgUseStart is sent whenever a message cannot be routed to a dialog.
const MsgUseStart = "Для начала работы с ботом воспользуйтесь командой /start"

// CallbackNoSuitableProjects identifies the "no suitable project"
// inline button in callback queries.
const CallbackNoSuitableProjects = "noSuitableProjectsButton"

const noSuitableProjectsLabel = "Я не нашёл необходимую мне проектную заявку"

const msgRegistrationPrompt = "Добро пожаловать на витрину проектов института управления и цифровых технологий (ИУЦТ) - РУТ (МИИТ)\U0001f689\n\n" +
	"Для выбора проектной заявки из витрины проектов просим Вас указать следующие данные <strong>через запятую</strong>:\n\n" +
	"✔️ Фамилия Имя Отчество - полностью, без сокращений\n" +
	"✔️ Контактный номер - в формате +7 XXX XXX-XX-XX (с пробелами и тире)\n" +
	"✔️ Группа - в формате XXX-000, где XXX - заглавные буквы\n\n" +
	"Пример заполнения:\n" +
	"Иванов Иван Иванович, +7 123 456-78-90, УЭИ-123\n\n" +
	"❕❕❕<strong>Будьте внимательны - в случае неправильного заполнения формы <u>внести изменения не получится</u></strong>"

const msgBadCredentials = "Некорректный формат данных!\n" +
	"Пример заполнения:\n\n" +
	"Иванов Иван Иванович, +7 123 456-78-90, УЭИ-123"

const msgGroupLimitReached = "Лимит команд для группы исчерпан!\nВ группе не может быть больше %d команд"

const msgAlreadyRegistered = "Вы уже зарегистрированы!\nВоспользуйтесь командой /start для просмотра статуса"

const msgRegistered = "Вы успешно зарегистрировались!\n\n"

const msgAlreadyRegisteredPickProject = "Вы уже зарегистрированы!\nВыберите проект"

const msgAlreadyCompleted = "Вы уже зарегистрировались и выбрали проект!\n\n"

const msgSelectionIntro = "✏️ Для легкого восприятия информации с витрины проектов просим Вас вспомнить следующие интересные факты:\n\n" +
	"✔️ <strong>Цель проекта</strong> раскрывает то, что хочет увидеть заказчик в результате вашей работы\n" +
	"✔️ <strong>Носитель проблемы</strong> – это человек, которому не известны возможные решения, необходимые для достижения поставленной цели\n" +
	"(Обращаем Ваше внимание на тот факт, что носитель проблемы одновременно может являться заказчиком)\n" +
	"✔️ <strong>Барьер проекта</strong> отвечает на следующий вопрос: «Что мешает носителю проблемы достичь поставленную цель?»\n" +
	"✔️ <strong>Существующие решения</strong> - это перечень инструментов, методов, подходов и готовых решений, неподходящих для выполнения поставленной цели\n\n" +
	"Ниже приведен список доступных для выбора проектов.\n" +
	"Введите, пожалуйста, <strong><u>номер</u></strong> выбранного Вами проекта."

const msgNoSuchProject = "Проект с указанным номером не существует"

const msgNotRegistered = "Вы не зарегистрированы!\nВоспользуйтесь командой /start для просмотра статуса"

const msgProjectTaken = "Выбранный вами проект уже занят. Сделайте другой выбор"

const msgReserved = "Спасибо за сделанный выбор! Желаем успехов в реализации проекта \"%s\""

const msgCompletedNoTeam = "Вы не зарегистрированы или выбранный Вами проект более не существует\n" +
	"Воспользуйтесь командой /start для просмотра статуса"

const msgChoiceFinal = "Вы уже выбрали проект \"%s\". Изменение заявки невозможно"
